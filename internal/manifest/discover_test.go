package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIsDraft(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{path: "plugins/_shared.plugin.yaml", expected: true},
		{path: "_draft.plugin.yaml", expected: true},
		{path: "plugins/buttons.plugin.yaml", expected: false},
		{path: "_plugins/buttons.plugin.yaml", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, isDraft(tt.path), "isDraft(%q)", tt.path)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "buttons.plugin.yaml"), "steps: []\n")
	writeFile(t, filepath.Join(dir, "forms", "inputs.plugin.yml"), "steps: []\n")
	writeFile(t, filepath.Join(dir, "forms", "_partial.plugin.yaml"), "steps: []\n")
	writeFile(t, filepath.Join(dir, "vendor", "third.plugin.yaml"), "steps: []\n")
	writeFile(t, filepath.Join(dir, "README.md"), "docs\n")
	writeFile(t, filepath.Join(dir, ".gitignore"), "vendor/\n")

	files, stats, err := Discover(dir, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "buttons.plugin.yaml"),
		filepath.Join(dir, "forms", "inputs.plugin.yml"),
	}, files)
	assert.Equal(t, Stats{FilesDiscovered: 4, FilesMatched: 2, FilesSkipped: 2}, stats)
}

func TestDiscoverDeduplicatesOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.plugin.yaml"), "steps: []\n")

	files, stats, err := Discover(dir, []string{"*.plugin.yaml", "**/*.yaml"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "a.plugin.yaml")}, files)
	assert.Equal(t, 1, stats.FilesDiscovered)
}

func TestDiscoverBadPattern(t *testing.T) {
	_, _, err := Discover(t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glob pattern")
}
