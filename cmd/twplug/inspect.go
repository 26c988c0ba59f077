package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twplug/internal/manifest"
	"github.com/yacobolo/twplug/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest>",
	Short: "Print the statement tree of a manifest",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		reporter := report.NewReporter(cmd.OutOrStdout(), report.Options{
			UseColors:  getBoolWithFallback("color", "color", false),
			PrintLines: true,
		})

		m, err := manifest.Load(path)
		if err != nil {
			source, _ := os.ReadFile(path)
			reporter.PrintIssues(report.Issues(path, err, source))
			return fmt.Errorf("inspect failed: %s is invalid", path)
		}

		stmts, err := m.Define()
		if err != nil {
			return fmt.Errorf("inspect failed: %w", err)
		}
		reporter.PrintTree(m.Name, stmts)
		return nil
	},
}
