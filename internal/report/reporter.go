// Package report formats build results for the terminal.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/twplug"
	"github.com/yacobolo/twplug/internal/manifest"
	"go.uber.org/multierr"
)

// Options configures a Reporter.
type Options struct {
	UseColors  bool // force colors
	PrintLines bool // print the offending manifest line under each issue
	Verbose    bool
}

// Result is the outcome of translating one manifest.
type Result struct {
	Name       string
	Source     string
	Output     string // empty when written to stdout
	Statements int
	Err        error
}

// Issue is a problem located in a manifest.
type Issue struct {
	File       string
	Line       int
	Column     int
	Text       string
	SourceLine string
}

// Reporter handles formatting and outputting build results.
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	verbose    bool
}

// NewReporter creates a new reporter with the given options.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(opts.UseColors),
		printLines: opts.PrintLines,
		verbose:    opts.Verbose,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// FORCE_COLOR (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// Issues splits a manifest error into located issues. source is the manifest
// text, used to attach the offending line; it may be nil.
func Issues(file string, err error, source []byte) []Issue {
	if err == nil {
		return nil
	}
	var lines []string
	if source != nil {
		lines = strings.Split(string(source), "\n")
	}

	var issues []Issue
	for _, e := range flatten(err) {
		issue := Issue{File: file, Text: e.Error()}
		var stepErr *manifest.StepError
		if errors.As(e, &stepErr) {
			issue.Line, issue.Column = stepErr.Line, stepErr.Column
			issue.Text = fmt.Sprintf("step %d: %v", stepErr.Index, stepErr.Err)
		}
		if issue.Line > 0 && issue.Line <= len(lines) {
			issue.SourceLine = lines[issue.Line-1]
		}
		issues = append(issues, issue)
	}
	return issues
}

// flatten splits combined errors, including ones wrapped by a single layer of
// context such as "path: <errors>".
func flatten(err error) []error {
	if errs := multierr.Errors(err); len(errs) > 1 {
		return errs
	}
	if inner := errors.Unwrap(err); inner != nil {
		if errs := multierr.Errors(inner); len(errs) > 1 {
			return errs
		}
	}
	return []error{err}
}

// PrintIssues outputs issues as file:line:col: text, sorted by position.
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Column < issues[j].Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := issue.File + ":"
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.File, issue.Line, issue.Column)
	}
	fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleCyan, location, r.useColors), issue.Text)

	if r.printLines && issue.SourceLine != "" {
		fmt.Fprintf(r.w, "\t%s\n", issue.SourceLine)
		caret := r.buildCaretIndicator(issue.SourceLine, issue.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column,
// keeping tabs from the source line so alignment survives tab stops.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintDiscovery reports how many manifests were found. Verbose only.
func (r *Reporter) PrintDiscovery(stats manifest.Stats) {
	if !r.verbose {
		return
	}
	line := fmt.Sprintf("Found %s", pluralizeCount(stats.FilesMatched, "manifest", "manifests"))
	if stats.FilesSkipped > 0 {
		line += fmt.Sprintf(" (skipped %s)", pluralizeCount(stats.FilesSkipped, "draft/ignored file", "draft/ignored files"))
	}
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, line, r.useColors))
}

// PrintResult outputs one manifest outcome.
func (r *Reporter) PrintResult(res Result) {
	if res.Err != nil {
		fmt.Fprintf(r.w, "%s %s\n",
			RenderStyle(StyleRed, "✗ "+res.Name, r.useColors),
			res.Err)
		return
	}

	dest := "stdout"
	if res.Output != "" {
		dest = res.Output
	}
	fmt.Fprintf(r.w, "%s %s %s\n",
		RenderStyle(StyleGreen, "✓ "+res.Name, r.useColors),
		RenderStyle(StyleGray, "→ "+dest, r.useColors),
		"("+pluralizeCount(res.Statements, "statement", "statements")+")")
}

// PrintSummary outputs the totals of a build.
func (r *Reporter) PrintSummary(results []Result) {
	var ok, failed, statements int
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		ok++
		statements += res.Statements
	}

	fmt.Fprintln(r.w, "")
	summary := fmt.Sprintf("Translated %s (%s)",
		pluralizeCount(ok, "manifest", "manifests"),
		pluralizeCount(statements, "statement", "statements"))
	if failed > 0 {
		summary += ", " + pluralizeCount(failed, "failure", "failures")
		fmt.Fprintln(r.w, RenderStyle(StyleRed, summary, r.useColors))
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGreen, summary, r.useColors))

	if len(results) == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: run twplug init, then add *.plugin.yaml manifests", r.useColors))
	}
}

// PrintTree outputs the statement tree of one manifest under a header.
func (r *Reporter) PrintTree(name string, stmts twplug.List) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, name, r.useColors))
	fmt.Fprint(r.w, twplug.RenderTree(stmts))
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
