package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yacobolo/pxrem/internal/pxrem"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert stylesheets whenever they change",
	Long: `Run a full conversion, then keep watching the source directory and
convert every stylesheet that is written or created until interrupted.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		w := cmd.OutOrStdout()

		if _, err := process(ctx, w, false); err != nil {
			return err
		}

		p, log, err := newProcessor(false)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		reporter := pxrem.NewReporter(w, buildReportConfig())
		quiet := getBoolWithFallback("quiet", "quiet", false)

		watcher := &pxrem.Watcher{
			Dir:   p.Config().SourceDir,
			Match: p.Selects,
			Log:   log,
		}
		return watcher.Run(ctx, func(path string) {
			fr, err := p.ProcessFile(path)
			if err != nil {
				log.Error("Failed to convert stylesheet", zap.String("file", path), zap.Error(err))
				return
			}
			if !quiet && len(fr.Changes) > 0 {
				reporter.PrintChanges(fr.Changes)
			}
		})
	},
}

func init() {
	addFileFlags(watchCmd)
}
