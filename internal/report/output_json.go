package report

import (
	"encoding/json"
	"io"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string      `json:"version"`
	Summary    JSONSummary `json:"summary"`
	Selectors  []string    `json:"selectors"`
	Files      []JSONFile  `json:"files"`
	Stylesheet string      `json:"stylesheet,omitempty"`
	Missing    []string    `json:"missing"`
	Issues     []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	FilesFailed  int `json:"files_failed"`
	Matches      int `json:"matches"`
	Selectors    int `json:"selectors"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
}

// JSONFile lists the selectors contributed by one file
type JSONFile struct {
	Path      string   `json:"path"`
	Selectors []string `json:"selectors"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Selector string `json:"selector"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the report as JSON. Output is deterministic for identical
// input so it can be committed or diffed.
func WriteJSON(w io.Writer, rep Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(buildJSONOutput(rep))
}

// buildJSONOutput converts a Report to JSONOutput
func buildJSONOutput(rep Report) JSONOutput {
	out := JSONOutput{
		Version:    "1.0",
		Selectors:  []string{},
		Files:      []JSONFile{},
		Stylesheet: rep.Stylesheet,
		Missing:    []string{},
		Issues:     make([]JSONIssue, 0, len(rep.Issues)),
	}

	if rep.Result != nil {
		stats := rep.Result.Stats
		out.Summary = JSONSummary{
			FilesScanned: stats.FilesScanned,
			FilesSkipped: stats.FilesSkipped,
			FilesFailed:  stats.FilesFailed,
			Matches:      stats.Matches,
			Selectors:    rep.Result.Selectors.Len(),
		}
		out.Selectors = rep.Result.Selectors.Sorted()
		for _, f := range rep.Result.Files {
			out.Files = append(out.Files, JSONFile{
				Path:      f.Path,
				Selectors: f.Selectors.Sorted(),
			})
		}
	}
	if rep.Missing != nil {
		out.Missing = rep.Missing
	}

	for _, issue := range rep.Issues {
		switch issue.Severity {
		case SeverityError:
			out.Summary.Errors++
		case SeverityWarning:
			out.Summary.Warnings++
		}

		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		out.Issues = append(out.Issues, JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Selector: issue.Selector,
			Linter:   issue.FromLinter,
			Source:   source,
		})
	}
	out.Summary.TotalIssues = len(out.Issues)

	return out
}
