package pxrem

import (
	"fmt"
	"io"
)

// DetermineOutputFormat selects the output format from the flag value
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "changes", "issues":
		return OutputChanges
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		// Unknown or empty: changes only, like golangci-lint
		return OutputChanges
	}
}

// WriteOutput writes the process result in the specified format
func WriteOutput(w io.Writer, result *ProcessResult, format OutputFormat, config ReportConfig, dryRun bool) error {
	switch format {
	case OutputChanges:
		reporter := NewReporter(w, config)
		result.TruncatedCount = reporter.PrintChanges(result.Changes)
		reporter.PrintSummary(result, dryRun)

	case OutputSummary:
		summary := NewSummaryReporter(w, shouldUseColors(config))
		summary.PrintStatistics(result)
		summary.PrintErrors(result)

	case OutputFull:
		reporter := NewReporter(w, config)
		result.TruncatedCount = reporter.PrintChanges(result.Changes)
		reporter.PrintSummary(result, dryRun)

		summary := NewSummaryReporter(w, reporter.UseColors())
		summary.PrintStatistics(result)
		summary.PrintErrors(result)

	case OutputJSON:
		if err := WriteJSON(w, result, dryRun); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	return nil
}
