package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twplug.yaml config file",
	Long:  `Create a .twplug.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# twplug configuration

verbose: false
color: false

build:
  source: .
  include:
    - "**/*.plugin.yaml"
    - "**/*.plugin.yml"
  output-dir: dist/css
  format: json             # json | css | tree
  stdout: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
