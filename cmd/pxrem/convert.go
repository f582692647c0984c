package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem/internal/pxrem"
	"go.uber.org/zap"
)

var convertCmd = &cobra.Command{
	Use:     "convert",
	Aliases: []string{"fix"},
	Short:   "Rewrite px and pt lengths in stylesheets to rem",
	Long: `Convert every declaration with px or pt lengths in the selected stylesheets.
Files are rewritten in place unless --output-dir is given.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConvert,
}

func init() {
	addFileFlags(convertCmd)
	convertCmd.Flags().Bool("dry-run", false, "Report changes without writing files")
}

func runConvert(cmd *cobra.Command, _ []string) error {
	_, err := process(cmd.Context(), cmd.OutOrStdout(), false)
	return err
}

// newProcessor builds the processor and its logger from koanf state
func newProcessor(dryRun bool) (*pxrem.Processor, *zap.Logger, error) {
	config, err := buildProcessConfig()
	if err != nil {
		return nil, nil, err
	}
	config.DryRun = config.DryRun || dryRun

	log := newLogger(config.Verbose)
	p, err := pxrem.NewProcessor(config, log)
	if err != nil {
		return nil, nil, err
	}
	return p, log, nil
}

// process runs one conversion pass and writes the report.
// Shared by convert, check and the initial pass of watch.
func process(ctx context.Context, w io.Writer, dryRun bool) (*pxrem.ProcessResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	p, log, err := newProcessor(dryRun)
	if err != nil {
		return nil, err
	}
	defer func() { _ = log.Sync() }()

	result, runErr := p.Run(ctx)
	if result == nil {
		return nil, fmt.Errorf("convert failed: %w", runErr)
	}

	if !getBoolWithFallback("quiet", "quiet", false) {
		format := pxrem.DetermineOutputFormat(getStringWithFallback("output-format", "report.output-format", ""))
		if err := pxrem.WriteOutput(w, result, format, buildReportConfig(), p.Config().DryRun); err != nil {
			return result, err
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("%d of %d files failed: %w", len(result.Errors), result.FilesScanned, runErr)
	}
	return result, nil
}
