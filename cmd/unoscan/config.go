package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/unoscan"
	"github.com/yacobolo/unoscan/internal/pipeline"
	"github.com/yacobolo/unoscan/internal/report"
)

const defaultConfigPath = ".unoscan.yaml"

var k = koanf.New(".")

// Config mirrors the layout of .unoscan.yaml.
type Config struct {
	Verbose bool          `koanf:"verbose"`
	Quiet   bool          `koanf:"quiet"`
	Color   bool          `koanf:"color"`
	Extract ExtractConfig `koanf:"extract"`
	Check   CheckConfig   `koanf:"check"`
	Watch   WatchConfig   `koanf:"watch"`
}

// ExtractConfig holds extraction settings shared by every command.
type ExtractConfig struct {
	Paths         []string `koanf:"paths"`
	Exclude       []string `koanf:"exclude"`
	ClassMode     string   `koanf:"class-mode"`
	AttributeMode string   `koanf:"attribute-mode"`
	KeyMode       string   `koanf:"key-mode"`
	Workers       int      `koanf:"workers"`
	Gitignore     bool     `koanf:"gitignore"`
	Output        string   `koanf:"output"`
	OutputFormat  string   `koanf:"output-format"`
}

// CheckConfig holds stylesheet coverage settings.
type CheckConfig struct {
	Stylesheet      string `koanf:"stylesheet"`
	Strict          bool   `koanf:"strict"`
	OutputFormat    string `koanf:"output-format"`
	MaxIssues       int    `koanf:"max-issues"`
	MaxSameIssues   int    `koanf:"max-same-issues"`
	PrintLines      bool   `koanf:"print-lines"`
	PrintLinterName bool   `koanf:"print-linter-name"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
	Output   string        `koanf:"output"`
}

var defaults = map[string]interface{}{
	"verbose":                 false,
	"quiet":                   false,
	"color":                   false,
	"extract.paths":           []string{"src/**/*.rs"},
	"extract.exclude":         []string{"target/**"},
	"extract.class-mode":      "scoped",
	"extract.attribute-mode":  "split",
	"extract.key-mode":        "first",
	"extract.workers":         0,
	"extract.gitignore":       true,
	"extract.output":          "",
	"extract.output-format":   "list",
	"check.stylesheet":        "generated/uno.css",
	"check.strict":            false,
	"check.output-format":     "issues",
	"check.max-issues":        0,
	"check.max-same-issues":   0,
	"check.print-lines":       true,
	"check.print-linter-name": true,
	"watch.debounce":          "200ms",
	"watch.output":            "",
}

// extractFlags are registered on every command that runs extraction and
// always map into the extract section.
var extractFlags = map[string]bool{
	"paths":          true,
	"exclude":        true,
	"class-mode":     true,
	"attribute-mode": true,
	"key-mode":       true,
	"workers":        true,
	"gitignore":      true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed || f.Name == "config" {
			return "", nil
		}
		return flagKey(cmd, f.Name), posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// flagKey maps a flag name to its config key.
func flagKey(cmd *cobra.Command, name string) string {
	if cmd.Root().PersistentFlags().Lookup(name) != nil {
		return name
	}
	if extractFlags[name] || cmd == cmd.Root() {
		return "extract." + name
	}
	return cmd.Name() + "." + name
}

// loadConfigFromPath loads defaults, the config file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Config file
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 3. Environment variables (UNOSCAN_* prefix)
	if err := k.Load(env.Provider("UNOSCAN_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key. The first underscore
// separates the section, the rest become hyphens:
//
//	UNOSCAN_EXTRACT_CLASS_MODE -> extract.class-mode
//	UNOSCAN_VERBOSE            -> verbose
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "UNOSCAN_"))
	section, rest, found := strings.Cut(s, "_")
	if !found {
		return section
	}
	switch section {
	case "extract", "check", "watch":
		return section + "." + strings.ReplaceAll(rest, "_", "-")
	}
	return strings.ReplaceAll(s, "_", "-")
}

// buildConfig unmarshals the merged koanf state.
func buildConfig() (Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// extractorOptions parses the mode names of the extract section.
func (c ExtractConfig) extractorOptions() (unoscan.Options, error) {
	var opts unoscan.Options
	var err error
	if opts.ClassMode, err = unoscan.ParseClassMode(c.ClassMode); err != nil {
		return opts, err
	}
	if opts.AttributeMode, err = unoscan.ParseAttributeMode(c.AttributeMode); err != nil {
		return opts, err
	}
	if opts.KeyMode, err = unoscan.ParseKeyMode(c.KeyMode); err != nil {
		return opts, err
	}
	return opts, nil
}

// pipelineConfig converts the extract section into a pipeline configuration.
func (c ExtractConfig) pipelineConfig() (pipeline.Config, error) {
	opts, err := c.extractorOptions()
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Patterns:         c.Paths,
		Excludes:         c.Exclude,
		Options:          opts,
		Workers:          c.Workers,
		RespectGitignore: c.Gitignore,
	}, nil
}

// reportOptions builds reporter options.
func (c Config) reportOptions() report.Options {
	return report.Options{
		UseColors:       c.Color,
		PrintLines:      c.Check.PrintLines,
		PrintLinterName: c.Check.PrintLinterName,
	}
}

// newLogger returns the diagnostics logger. Quiet discards everything,
// verbose enables debug output.
func newLogger(cfg Config, w io.Writer) *slog.Logger {
	if cfg.Quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
