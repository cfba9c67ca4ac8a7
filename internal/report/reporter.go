// Package report formats extraction results and coverage issues.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/unoscan/internal/pipeline"
)

// Options controls reporter output.
type Options struct {
	UseColors       bool // Force color output (default: auto-detect)
	PrintLines      bool // Show source lines with issues
	PrintLinterName bool // Show (unocheck) suffix
}

// Report is everything a single run produced.
type Report struct {
	Result     *pipeline.Result
	Stylesheet string   // path of the checked CSS file, empty when not checking
	Missing    []string // selectors with no rule, sorted
	Issues     []Issue  // occurrences of missing selectors
	Truncated  int      // issues dropped by limits
}

// ErrorCount returns the number of error-severity issues.
func (r *Report) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Reporter handles formatting and outputting issues
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given options
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(opts),
		printLines:      opts.PrintLines,
		printLinterName: opts.PrintLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(opts Options) bool {
	// Explicit flag wins
	if opts.UseColors {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// FORCE_COLOR is set by GitHub Actions and similar CI systems
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintIssues outputs issues in golangci-lint format
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue in golangci-lint style
func (r *Reporter) printIssue(issue Issue) {
	// Format: file:line:col: message (linter)
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleLocation, location, r.useColors),
		issue.Text,
		RenderStyle(StyleMuted, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}

		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleWarning, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in the terminal.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	var padding strings.Builder
	n := 0
	for _, ch := range sourceLine {
		if n >= column-1 {
			break
		}
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
		n++
	}

	return padding.String() + "^"
}

// PrintSummary outputs the issue count summary
func (r *Reporter) PrintSummary(rep Report) {
	total := len(rep.Issues)

	var errors, warnings int
	for _, issue := range rep.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(r.w, "")

	counts := pluralizeCount(total, "issue", "issues")
	if errors > 0 && warnings > 0 {
		counts += fmt.Sprintf(" (%s, %s)",
			pluralizeCount(errors, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	}
	if rep.Truncated > 0 {
		counts += fmt.Sprintf(" (%s truncated)", pluralizeCount(rep.Truncated, "issue", "issues"))
	}

	style := StyleClean
	if errors > 0 {
		style = StyleFailing
	} else if total > 0 {
		style = StyleWarning
	}
	fmt.Fprintln(r.w, RenderStyle(style, counts, r.useColors))

	if len(rep.Missing) > 0 {
		fmt.Fprintf(r.w, "* %s without rules in %s\n",
			pluralizeCount(len(rep.Missing), "selector", "selectors"), rep.Stylesheet)
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleMuted, "Hint: check the generator's attributify prefix and extractor modes", r.useColors))
	}
}

// PrintStatistics outputs extraction statistics
func (r *Reporter) PrintStatistics(rep Report) {
	if rep.Result == nil {
		return
	}
	stats := rep.Result.Stats

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleLocation, "Extraction Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	fmt.Fprintf(r.w, "Files Scanned:     %d\n", stats.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:     %d\n", stats.FilesSkipped)
	fmt.Fprintf(r.w, "Files Failed:      %d\n", stats.FilesFailed)
	fmt.Fprintf(r.w, "Matches:           %d\n", stats.Matches)
	fmt.Fprintf(r.w, "Unique Selectors:  %d\n", rep.Result.Selectors.Len())
	fmt.Fprintf(r.w, "Cache Hits:        %d\n", stats.CacheHits)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
