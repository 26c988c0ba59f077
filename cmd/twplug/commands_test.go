package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitWritesDefaultConfig(t *testing.T) {
	chdir(t, t.TempDir())

	var out bytes.Buffer
	initCmd.SetOut(&out)
	t.Cleanup(func() { initCmd.SetOut(nil) })

	require.NoError(t, initCmd.RunE(initCmd, nil))
	assert.Equal(t, "Created .twplug.yaml\n", out.String())

	data, err := os.ReadFile(defaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig, string(data))

	// second run refuses to overwrite
	err = initCmd.RunE(initCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDefaultConfigRoundTrips(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	path := filepath.Join(dir, defaultConfigPath)
	require.NoError(t, os.WriteFile(path, []byte(defaultConfig), 0o644))
	require.NoError(t, loadConfigFromPath(path))

	config := buildBuildConfig()
	assert.Equal(t, ".", config.SourceDir)
	assert.Equal(t, "dist/css", config.OutputDir)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, []string{"**/*.plugin.yaml", "**/*.plugin.yml"}, config.Includes)
}

func TestInspect(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	path := writeManifest(t, dir, "buttons.plugin.yaml", buttonsManifest)

	var out bytes.Buffer
	inspectCmd.SetOut(&out)
	t.Cleanup(func() { inspectCmd.SetOut(nil) })

	require.NoError(t, inspectCmd.RunE(inspectCmd, []string{path}))
	assert.Contains(t, out.String(), "buttons\n")
	assert.Contains(t, out.String(), "--color-brand: #123456")
	assert.Contains(t, out.String(), "background-color: var(--color-brand)")
}

func TestInspectInvalidManifest(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	path := writeManifest(t, dir, "bad.plugin.yaml", "steps:\n  - addVar: {value: 3px}\n")

	var out bytes.Buffer
	inspectCmd.SetOut(&out)
	t.Cleanup(func() { inspectCmd.SetOut(nil) })

	err := inspectCmd.RunE(inspectCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, out.String(), path+":2:5: step 1: addVar: Name")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "twplug dev\n", out.String())
}
