package report

import (
	"bufio"
	"fmt"
	"io"
)

// OutputFormat represents the output format
type OutputFormat string

const (
	// OutputList prints one selector per line, sorted (safelist files, piping)
	OutputList OutputFormat = "list"
	// OutputIssues shows coverage issues in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputFull shows issues plus extraction statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to the default for the command.
func DetermineOutputFormat(formatFlag string, fallback OutputFormat) OutputFormat {
	switch formatFlag {
	case "list":
		return OutputList
	case "issues":
		return OutputIssues
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return fallback
	}
}

// WriteOutput writes the report in the specified format
func WriteOutput(w io.Writer, rep Report, format OutputFormat, opts Options) error {
	switch format {
	case OutputList:
		return WriteList(w, rep)

	case OutputIssues:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(rep.Issues)
		reporter.PrintSummary(rep)

	case OutputFull:
		reporter := NewReporter(w, opts)
		reporter.PrintIssues(rep.Issues)
		reporter.PrintSummary(rep)
		reporter.PrintStatistics(rep)

	case OutputJSON:
		return WriteJSON(w, rep)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

// WriteList writes the merged selector set, one per line in lexical order.
func WriteList(w io.Writer, rep Report) error {
	if rep.Result == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	for _, sel := range rep.Result.Selectors.Sorted() {
		if _, err := fmt.Fprintln(bw, sel); err != nil {
			return err
		}
	}
	return bw.Flush()
}
