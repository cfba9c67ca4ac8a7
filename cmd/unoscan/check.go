package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/unoscan/internal/report"
	"github.com/yacobolo/unoscan/internal/stylesheet"
)

// errCheckFailed signals a failing check whose report was already printed.
var errCheckFailed = errors.New("check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report extracted selectors with no rule in the generated stylesheet",
	Long: `Extract selectors and compare them against the CSS UnoCSS generated.
Every occurrence of a selector without a matching rule is reported with
its source location. In strict mode any missing selector fails the run.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	addExtractFlags(checkCmd)

	f := checkCmd.Flags()
	f.String("stylesheet", "generated/uno.css", "Generated CSS file to check against")
	f.Bool("strict", false, "Exit 1 on any missing selector (CI mode)")
	f.String("output-format", "issues", "Output format: issues|full|json|list")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (unocheck) suffix on issues")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	rep, err := buildCheckReport(cmd, cfg)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		format := report.DetermineOutputFormat(cfg.Check.OutputFormat, report.OutputIssues)
		if err := report.WriteOutput(os.Stdout, rep, format, cfg.reportOptions()); err != nil {
			return err
		}
	}

	// "Soft Gate": only strict mode turns missing selectors into a failure
	if rep.ErrorCount() > 0 {
		return errCheckFailed
	}
	return nil
}

// buildCheckReport runs extraction and matches the result against the stylesheet.
func buildCheckReport(cmd *cobra.Command, cfg Config) (report.Report, error) {
	index, err := stylesheet.ParseFile(cfg.Check.Stylesheet)
	if err != nil {
		return report.Report{}, fmt.Errorf("reading stylesheet: %w", err)
	}

	result, err := runPipeline(cmd.Context(), cfg)
	if err != nil {
		return report.Report{}, err
	}

	severity := report.SeverityWarning
	if cfg.Check.Strict {
		severity = report.SeverityError
	}

	missing := index.Missing(result.Selectors)
	issues := report.BuildIssues(result, missing, severity)
	issues, truncated := report.LimitIssues(issues, cfg.Check.MaxIssues, cfg.Check.MaxSameIssues)

	return report.Report{
		Result:     result,
		Stylesheet: cfg.Check.Stylesheet,
		Missing:    missing,
		Issues:     issues,
		Truncated:  truncated,
	}, nil
}
