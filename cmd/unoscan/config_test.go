package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/unoscan"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// newTestTree builds a root/check command pair with the same flags as the CLI.
func newTestTree() (*cobra.Command, *cobra.Command) {
	root := &cobra.Command{Use: "unoscan"}
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.PersistentFlags().String("config", defaultConfigPath, "")

	check := &cobra.Command{Use: "check"}
	addExtractFlags(check)
	check.Flags().Bool("strict", false, "")
	check.Flags().Int("max-issues", 0, "")
	root.AddCommand(check)
	return root, check
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unoscan.yaml")
	configContent := `
verbose: true

extract:
  paths:
    - "app/**/*.rs"
  class-mode: unscoped
  attribute-mode: whole
  workers: 4

check:
  stylesheet: dist/uno.css
  strict: true
  max-same-issues: 3

watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, []string{"app/**/*.rs"}, cfg.Extract.Paths)
	assert.Equal(t, "unscoped", cfg.Extract.ClassMode)
	assert.Equal(t, "whole", cfg.Extract.AttributeMode)
	assert.Equal(t, 4, cfg.Extract.Workers)
	assert.Equal(t, "dist/uno.css", cfg.Check.Stylesheet)
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, 3, cfg.Check.MaxSameIssues)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)

	// Keys absent from the file keep their defaults
	assert.Equal(t, "first", cfg.Extract.KeyMode)
	assert.Equal(t, []string{"target/**"}, cfg.Extract.Exclude)
	assert.True(t, cfg.Check.PrintLines)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.unoscan.yaml"))

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**/*.rs"}, cfg.Extract.Paths)
	assert.Equal(t, "scoped", cfg.Extract.ClassMode)
	assert.Equal(t, "split", cfg.Extract.AttributeMode)
	assert.Equal(t, "list", cfg.Extract.OutputFormat)
	assert.True(t, cfg.Extract.Gitignore)
	assert.Equal(t, "generated/uno.css", cfg.Check.Stylesheet)
	assert.Equal(t, "issues", cfg.Check.OutputFormat)
	assert.False(t, cfg.Check.Strict)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unoscan.yaml")
	configContent := `
extract:
  class-mode: scoped
check:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("UNOSCAN_EXTRACT_CLASS_MODE", "off")
	t.Setenv("UNOSCAN_CHECK_STRICT", "true")
	t.Setenv("UNOSCAN_CHECK_MAX_SAME_ISSUES", "2")

	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Extract.ClassMode)
	assert.True(t, cfg.Check.Strict)
	assert.Equal(t, 2, cfg.Check.MaxSameIssues)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"UNOSCAN_VERBOSE", "verbose"},
		{"UNOSCAN_EXTRACT_PATHS", "extract.paths"},
		{"UNOSCAN_EXTRACT_CLASS_MODE", "extract.class-mode"},
		{"UNOSCAN_CHECK_PRINT_LINTER_NAME", "check.print-linter-name"},
		{"UNOSCAN_WATCH_DEBOUNCE", "watch.debounce"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unoscan.yaml")
	configContent := `
extract:
  class-mode: unscoped
  paths:
    - "from-file/**/*.rs"
check:
  max-issues: 7
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	_, check := newTestTree()
	require.NoError(t, check.ParseFlags([]string{
		"--config", configPath,
		"--class-mode", "off",
		"--strict",
		"--verbose",
	}))
	require.NoError(t, loadConfig(check))

	cfg, err := buildConfig()
	require.NoError(t, err)
	assert.Equal(t, "off", cfg.Extract.ClassMode)
	assert.True(t, cfg.Check.Strict)
	assert.True(t, cfg.Verbose)

	// Unchanged flag defaults must not shadow the config file
	assert.Equal(t, []string{"from-file/**/*.rs"}, cfg.Extract.Paths)
	assert.Equal(t, 7, cfg.Check.MaxIssues)
}

func TestFlagKey(t *testing.T) {
	root, check := newTestTree()

	assert.Equal(t, "verbose", flagKey(check, "verbose"))
	assert.Equal(t, "extract.paths", flagKey(check, "paths"))
	assert.Equal(t, "check.strict", flagKey(check, "strict"))
	assert.Equal(t, "extract.workers", flagKey(root, "workers"))
}

func TestExtractorOptions(t *testing.T) {
	cfg := ExtractConfig{ClassMode: "unscoped", AttributeMode: "whole", KeyMode: "all"}
	opts, err := cfg.extractorOptions()
	require.NoError(t, err)
	assert.Equal(t, unoscan.Options{
		ClassMode:     unoscan.ClassUnscoped,
		AttributeMode: unoscan.AttributeWhole,
		KeyMode:       unoscan.KeyAllUnderscores,
	}, opts)

	_, err = ExtractConfig{ClassMode: "everything"}.extractorOptions()
	require.ErrorIs(t, err, unoscan.ErrUnknownMode)

	_, err = ExtractConfig{AttributeMode: "halves"}.pipelineConfig()
	require.ErrorIs(t, err, unoscan.ErrUnknownMode)
}

func TestPipelineConfig(t *testing.T) {
	cfg := ExtractConfig{
		Paths:     []string{"src/**/*.rs"},
		Exclude:   []string{"target/**"},
		Workers:   3,
		Gitignore: true,
	}
	pcfg, err := cfg.pipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths, pcfg.Patterns)
	assert.Equal(t, cfg.Exclude, pcfg.Excludes)
	assert.Equal(t, 3, pcfg.Workers)
	assert.True(t, pcfg.RespectGitignore)
	assert.Equal(t, unoscan.DefaultOptions(), pcfg.Options)
}

func TestDefaultConfigMatchesDefaults(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unoscan.yaml")
	require.NoError(t, writeDefaultConfig(configPath, false))
	require.Error(t, writeDefaultConfig(configPath, false), "existing file needs --force")
	require.NoError(t, writeDefaultConfig(configPath, true))

	require.NoError(t, loadConfigFromPath(configPath))
	fromFile, err := buildConfig()
	require.NoError(t, err)

	resetKoanf()
	require.NoError(t, loadConfigFromPath(filepath.Join(dir, "missing.yaml")))
	fromDefaults, err := buildConfig()
	require.NoError(t, err)

	assert.Equal(t, fromDefaults, fromFile)
}
