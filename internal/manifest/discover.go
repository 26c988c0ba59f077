package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIncludes are the glob patterns used when none are configured.
var DefaultIncludes = []string{"**/*.plugin.yaml", "**/*.plugin.yml"}

// Stats tracks discovery counts.
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesMatched    int // Manifests kept after filtering
	FilesSkipped    int // Files skipped as drafts or gitignored
}

// isDraft reports whether a manifest is a draft: files prefixed with "_" are
// partials that are never translated on their own.
func isDraft(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "_")
}

// loadGitIgnore compiles the .gitignore at the root of sourceDir.
// A missing .gitignore is fine.
func loadGitIgnore(sourceDir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(sourceDir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// shouldSkipFile determines if a discovered file should be excluded.
//
// Two-layer filtering:
// 1. Draft check: skip _*.yaml partials
// 2. Gitignore check: skip files ignored by sourceDir/.gitignore
func shouldSkipFile(gi *ignore.GitIgnore, sourceDir, path string) bool {
	if isDraft(path) {
		return true
	}
	if gi == nil {
		return false
	}
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	return gi.MatchesPath(filepath.ToSlash(rel))
}

// Discover finds all manifests under sourceDir matching includes.
// Results keep glob order and are deduplicated.
func Discover(sourceDir string, includes []string) ([]string, Stats, error) {
	if len(includes) == 0 {
		includes = DefaultIncludes
	}

	var files []string
	seen := make(map[string]bool)
	stats := Stats{}
	gi := loadGitIgnore(sourceDir)

	for _, pattern := range includes {
		fullPattern := filepath.Join(sourceDir, pattern)

		// doublestar for ** support
		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(gi, sourceDir, match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesMatched++
		}
	}

	return files, stats, nil
}
