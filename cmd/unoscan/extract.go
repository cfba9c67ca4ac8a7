package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/unoscan/internal/pipeline"
	"github.com/yacobolo/unoscan/internal/report"
)

var extractCmd = &cobra.Command{
	Use:     "extract",
	Aliases: []string{"ex"},
	Short:   "Extract selectors from source files",
	Long: `Scan the configured source files and print the merged selector set,
one per line in lexical order. Use --output to write a safelist file.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd)
	addExtractOutputFlags(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	result, err := runPipeline(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if cfg.Quiet && cfg.Extract.Output == "" {
		return nil
	}

	format := report.DetermineOutputFormat(cfg.Extract.OutputFormat, report.OutputList)
	rep := report.Report{Result: result}

	if cfg.Extract.Output == "" {
		return report.WriteOutput(os.Stdout, rep, format, cfg.reportOptions())
	}
	changed, err := writeFileIfChanged(cfg.Extract.Output, func(w io.Writer) error {
		return report.WriteOutput(w, rep, format, cfg.reportOptions())
	})
	if err != nil {
		return err
	}
	if changed && !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d selectors to %s\n", result.Selectors.Len(), cfg.Extract.Output)
	}
	return nil
}

// newPipeline builds a pipeline from the extract section of cfg.
func newPipeline(cfg Config) (*pipeline.Pipeline, error) {
	pcfg, err := cfg.Extract.pipelineConfig()
	if err != nil {
		return nil, err
	}
	p, err := pipeline.New(pcfg, newLogger(cfg, os.Stderr))
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}
	return p, nil
}

// runPipeline runs one extraction pass.
func runPipeline(ctx context.Context, cfg Config) (*pipeline.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return nil, err
	}
	result, err := p.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	return result, nil
}

// writeFileIfChanged renders into memory and replaces path only when the
// bytes differ, so generators watching the file are not retriggered.
func writeFileIfChanged(path string, render func(w io.Writer) error) (bool, error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return false, err
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, buf.Bytes()) {
		return false, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
