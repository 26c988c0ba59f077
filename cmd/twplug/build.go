package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/twplug"
	"github.com/yacobolo/twplug/internal/manifest"
	"github.com/yacobolo/twplug/internal/report"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:     "build [manifests...]",
	Aliases: []string{"b"},
	Short:   "Translate plugin manifests into stylesheet statements",
	Long: `Translate plugin manifests and write one output file per manifest.
Without arguments, manifests are discovered under --source using --include globs.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", ".", "Directory searched for manifests")
	f.StringSlice("include", nil, "Glob patterns for manifests to include")
	f.String("output-dir", "dist/css", "Output directory for translated files")
	f.Bool("stdout", false, "Write translated output to stdout instead of files")
	f.String("format", "json", "Output format: json|css|tree")
}

// outputFormat renders statements and names the output file extension.
type outputFormat struct {
	ext    string
	render func(twplug.List) string
}

var formats = map[string]outputFormat{
	"json": {ext: ".json", render: func(stmts twplug.List) string { return twplug.RenderJSON(stmts) + "\n" }},
	"css":  {ext: ".css", render: twplug.RenderCSS},
	"tree": {ext: ".txt", render: twplug.RenderTree},
}

func runBuild(cmd *cobra.Command, args []string) error {
	config := buildBuildConfig()

	log, err := newLogger(config.Verbose)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Keep stdout clean for the translated output.
	msgs := cmd.OutOrStdout()
	if config.Stdout {
		msgs = cmd.ErrOrStderr()
	}
	if config.Quiet {
		msgs = io.Discard
	}

	results, err := buildManifests(config, args, cmd.OutOrStdout(), msgs, log)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d manifests failed", failed, len(results))
	}
	return nil
}

// buildManifests translates the given manifests, or the discovered ones when
// paths is empty. Translated output goes to out in stdout mode; progress and
// issues go to msgs. A failing manifest does not stop the others.
func buildManifests(config buildConfig, paths []string, out, msgs io.Writer, log *zap.Logger) ([]report.Result, error) {
	format, ok := formats[config.Format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want json, css or tree)", config.Format)
	}

	reporter := report.NewReporter(msgs, report.Options{
		UseColors:  config.UseColors,
		PrintLines: true,
		Verbose:    config.Verbose,
	})

	if len(paths) == 0 {
		files, stats, err := manifest.Discover(config.SourceDir, config.Includes)
		if err != nil {
			return nil, fmt.Errorf("discover failed: %w", err)
		}
		reporter.PrintDiscovery(stats)
		paths = files
	}

	results := make([]report.Result, 0, len(paths))
	for _, path := range paths {
		res := buildOne(config, format, path, out, log)
		if res.Err != nil {
			source, _ := os.ReadFile(path)
			reporter.PrintIssues(report.Issues(path, res.Err, source))
		}
		reporter.PrintResult(res)
		results = append(results, res)
	}

	reporter.PrintSummary(results)
	return results, nil
}

func buildOne(config buildConfig, format outputFormat, path string, out io.Writer, log *zap.Logger) report.Result {
	res := report.Result{Name: path, Source: path}

	m, err := manifest.Load(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Name = m.Name

	stmts, err := m.Define(twplug.WithLogger(log.With(zap.String("manifest", m.Name))))
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Statements = len(stmts)
	rendered := format.render(stmts)

	if config.Stdout {
		if _, err := io.WriteString(out, rendered); err != nil {
			res.Err = fmt.Errorf("write failed: %w", err)
		}
		return res
	}

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		res.Err = fmt.Errorf("write failed: %w", err)
		return res
	}
	res.Output = filepath.Join(config.OutputDir, m.Name+format.ext)
	if err := os.WriteFile(res.Output, []byte(rendered), 0o644); err != nil {
		res.Err = fmt.Errorf("write failed: %w", err)
	}
	return res
}
