package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/unoscan/internal/pipeline"
	"github.com/yacobolo/unoscan/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-extract selectors whenever a source file changes",
	Long: `Run an initial extraction, then watch the source directories and rerun
on every debounced batch of changes. Unchanged files are served from cache.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addExtractFlags(watchCmd)

	f := watchCmd.Flags()
	f.Duration("debounce", pipeline.DefaultDebounce, "Quiet period before a change triggers a rerun")
	f.StringP("output", "o", "", "Selector file rewritten after every run (default: stdout)")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	w, err := pipeline.NewWatcher(p, cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Stop()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg, os.Stderr)
	format := report.DetermineOutputFormat(cfg.Extract.OutputFormat, report.OutputList)

	w.Start(ctx, func(result *pipeline.Result, changed []string, err error) {
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("extraction failed", "error", err)
			}
			return
		}
		logger.Info("selectors updated", "changed", len(changed), "selectors", result.Selectors.Len())
		if err := emitWatchResult(cfg, result, format); err != nil {
			logger.Error("writing output", "error", err)
		}
	})

	<-ctx.Done()
	return nil
}

// emitWatchResult writes one run's selectors to the watch output.
func emitWatchResult(cfg Config, result *pipeline.Result, format report.OutputFormat) error {
	rep := report.Report{Result: result}
	render := func(out io.Writer) error {
		return report.WriteOutput(out, rep, format, cfg.reportOptions())
	}

	if cfg.Watch.Output == "" {
		if cfg.Quiet {
			return nil
		}
		return render(os.Stdout)
	}
	_, err := writeFileIfChanged(cfg.Watch.Output, render)
	return err
}
