package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unoscan",
	Short: "UnoCSS selector extractor for Rust component sources",
	Long: `Scan Rust UI sources for class literals and u_<key>: "<value>" attributify
props and emit the selectors UnoCSS must generate rules for.`,
	// Default behavior: run extract when no subcommand is given.
	// loadConfig is called here because PreRunE of extractCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runExtract(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path")

	// Root runs extract, so it accepts extract's output flags too
	addExtractFlags(rootCmd)
	addExtractOutputFlags(rootCmd)

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addExtractFlags registers the extraction flags shared by extract, check and watch.
func addExtractFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("paths", []string{"src/**/*.rs"}, "File patterns to scan for selectors")
	f.StringSlice("exclude", []string{"target/**"}, "File patterns to skip")
	f.String("class-mode", "scoped", "Class literal matching: scoped|unscoped|off")
	f.String("attribute-mode", "split", "Attributify value handling: split|whole")
	f.String("key-mode", "first", "Underscore to hyphen conversion in keys: first|all")
	f.Int("workers", 0, "Concurrent file readers (0=GOMAXPROCS)")
	f.Bool("gitignore", true, "Skip files matched by ./.gitignore")

	registerModeCompletion(cmd, "class-mode", "scoped", "unscoped", "off")
	registerModeCompletion(cmd, "attribute-mode", "split", "whole")
	registerModeCompletion(cmd, "key-mode", "first", "all")
}

// addExtractOutputFlags registers the flags that control where extract writes.
func addExtractOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "Write selectors to this file instead of stdout")
	f.String("output-format", "list", "Output format: list|json|full")
}

func registerModeCompletion(cmd *cobra.Command, flag string, values ...string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}
