package report

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yacobolo/unoscan/internal/pipeline"
)

// LinterName is the suffix shown after each issue.
const LinterName = "unocheck"

// Issue represents a single check violation in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "unocheck"
	Text        string   `json:"Text"`        // "selector \"[u-p~=\\\"4\\\"]\" has no rule in stylesheet"
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	Selector    string   `json:"Selector"`    // the uncovered selector
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/client/pages/home.rs"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, start of the usage)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// IssueMissingRule is the message for a selector the stylesheet does not cover.
const IssueMissingRule = "selector %s has no rule in stylesheet"

// Locate converts a byte offset into a 1-based line and column and returns
// the text of that line. Columns count runes, not bytes.
func Locate(content string, offset int) (line, column int, text string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	start := strings.LastIndexByte(content[:offset], '\n') + 1
	end := strings.IndexByte(content[offset:], '\n')
	if end == -1 {
		end = len(content)
	} else {
		end += offset
	}

	line = strings.Count(content[:start], "\n") + 1
	column = utf8.RuneCountInString(content[start:offset]) + 1
	text = strings.TrimRight(content[start:end], "\r")
	return line, column, text
}

// BuildIssues creates one issue per occurrence of a missing selector. Issues
// are ordered by file, line and column.
func BuildIssues(result *pipeline.Result, missing []string, severity string) []Issue {
	if len(missing) == 0 {
		return nil
	}
	isMissing := make(map[string]bool, len(missing))
	for _, sel := range missing {
		isMissing[sel] = true
	}

	var issues []Issue
	for _, file := range result.Files {
		for _, m := range file.Matches {
			reported := make(map[string]bool)
			for _, sel := range m.Selectors {
				if !isMissing[sel] || reported[sel] {
					continue
				}
				reported[sel] = true

				line, col, text := Locate(file.Content, m.Offset)
				issues = append(issues, Issue{
					FromLinter:  LinterName,
					Text:        fmt.Sprintf(IssueMissingRule, quoteSelector(sel)),
					Severity:    severity,
					Selector:    sel,
					SourceLines: []string{text},
					Pos: IssuePos{
						Filename: file.Path,
						Line:     line,
						Column:   col,
					},
				})
			}
		}
	}

	SortIssues(issues)
	return issues
}

// quoteSelector wraps class lists in quotes; attribute selectors already
// carry their own brackets.
func quoteSelector(sel string) string {
	if strings.HasPrefix(sel, "[") {
		return sel
	}
	return fmt.Sprintf("%q", sel)
}

// SortIssues sorts issues by file, then line, then column
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}

// LimitIssues applies max-issues and max-same-issues constraints and returns
// the kept issues along with the number dropped.
func LimitIssues(issues []Issue, maxIssues, maxSame int) ([]Issue, int) {
	originalCount := len(issues)

	if maxIssues > 0 && len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}

	// Deduplication by message text
	if maxSame > 0 {
		issues = deduplicateSameIssues(issues, maxSame)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
