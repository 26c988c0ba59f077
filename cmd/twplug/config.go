package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/twplug/internal/manifest"
)

const defaultConfigPath = ".twplug.yaml"

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Without a koanf instance posflag skips unchanged flags, so flag
	// defaults never shadow file or env values.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// TWPLUG_BUILD_SOURCE -> build.source, TWPLUG_VERBOSE -> verbose
	if err := k.Load(env.Provider("TWPLUG_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TWPLUG_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildConfig holds the settings of the build command.
type buildConfig struct {
	SourceDir string
	Includes  []string
	OutputDir string
	Stdout    bool
	Format    string
	Verbose   bool
	Quiet     bool
	UseColors bool
}

// buildBuildConfig constructs the build settings from koanf state.
func buildBuildConfig() buildConfig {
	config := buildConfig{
		SourceDir: getStringWithFallback("source", "build.source", "."),
		OutputDir: getStringWithFallback("output-dir", "build.output-dir", "dist/css"),
		Stdout:    getBoolWithFallback("stdout", "build.stdout", false),
		Format:    getStringWithFallback("format", "build.format", "json"),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Quiet:     getBoolWithFallback("quiet", "quiet", false),
		UseColors: getBoolWithFallback("color", "color", false),
	}

	// Flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("build.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = append([]string(nil), manifest.DefaultIncludes...)
	}

	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
