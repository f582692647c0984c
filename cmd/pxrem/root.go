package main

import (
	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem/internal/rem"
)

var rootCmd = &cobra.Command{
	Use:   "pxrem",
	Short: "Convert px and pt lengths in stylesheets to rem",
	Long: `Rewrite CSS declarations so that px and pt lengths become rem.
Keywords, colors, percentages and unitless numbers are left alone,
and an optional px fallback keeps old engines working.`,
	// Default behavior: run convert when no subcommand is given.
	// We must call loadConfig here because PreRunE of convertCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runConvert(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("config", defaultConfigPath, "Config file path")
	f.String("base-font-size", "16px", "Root font size (px, pt or unitless px)")
	f.String("mode", string(rem.ModeRem), "Emitted declarations: rem|px-rem")
	f.Int("precision", rem.DefaultPrecision, "Max fraction digits of converted values (negative = shortest exact)")
	f.StringSlice("round-exceptions", nil, "Extra properties converted without rounding")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// addFileFlags registers the flags shared by commands that process stylesheets
func addFileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source", ".", "Source stylesheet directory")
	f.String("output-dir", "", "Mirror converted files here (default: rewrite in place)")
	f.StringSlice("include", nil, "Glob patterns for stylesheets to include (default: **/*.css)")
	f.StringSlice("exclude", nil, "Glob patterns for stylesheets to skip")
	f.Int("workers", 0, "Files processed in parallel (0 = number of CPUs)")
	f.String("output-format", "", "Output format: changes|summary|full|json")
	f.Int("max-changes-per-file", 0, "Max changes to show per file (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with changes")
}
