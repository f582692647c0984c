package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .pxrem.yaml config file",
	Long:  `Create a .pxrem.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# pxrem configuration
# Docs: https://github.com/yacobolo/pxrem

# Conversion settings
base-font-size: 16px   # px, pt or a unitless px number
mode: rem              # rem | px-rem (px fallback line before each rem line)
precision: 5           # max fraction digits; negative = shortest exact
round-exceptions: []   # extra properties converted without rounding
verbose: false

# Files
convert:
  source: .
  output-dir: ""       # empty = rewrite in place
  include:
    - "**/*.css"
  exclude:
    - "vendor/**"
    - "node_modules/**"
  workers: 0           # 0 = number of CPUs

# Output
report:
  output-format: changes   # changes | summary | full | json
  max-changes-per-file: 0  # 0 = unlimited
  print-lines: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
