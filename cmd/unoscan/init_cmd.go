package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .unoscan.yaml config file",
	Long:  `Create a .unoscan.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return writeDefaultConfig(defaultConfigPath, force)
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	return nil
}

const defaultConfig = `# unoscan configuration
# Docs: https://github.com/yacobolo/unoscan

verbose: false

# Extraction settings (shared by extract, check and watch)
extract:
  paths:
    - "src/**/*.rs"
  exclude:
    - "target/**"
  class-mode: scoped       # scoped | unscoped | off
  attribute-mode: split    # split | whole
  key-mode: first          # first | all
  workers: 0               # 0 = GOMAXPROCS
  gitignore: true
  output: ""               # empty = stdout
  output-format: list      # list | json | full

# Stylesheet coverage settings
check:
  stylesheet: generated/uno.css
  strict: false
  output-format: issues    # issues | full | json | list
  max-issues: 0            # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Watch mode settings
watch:
  debounce: 200ms
  output: ""
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
