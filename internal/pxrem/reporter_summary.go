package pxrem

import (
	"fmt"
	"io"
)

// SummaryReporter prints run statistics
type SummaryReporter struct {
	w         io.Writer
	useColors bool
}

// NewSummaryReporter creates a summary reporter
func NewSummaryReporter(w io.Writer, useColors bool) *SummaryReporter {
	return &SummaryReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs file and declaration counts
func (r *SummaryReporter) PrintStatistics(result *ProcessResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "pxrem Statistics", r.useColors))
	fmt.Fprintln(r.w, "----------------")

	fmt.Fprintf(r.w, "Files Discovered:        %d\n", result.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Scanned:           %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:           %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Files Changed:           %d\n", result.FilesChanged)
	fmt.Fprintf(r.w, "Files Written:           %d\n", result.FilesWritten)
	fmt.Fprintf(r.w, "Declarations Converted:  %d\n", len(result.Changes))
	fmt.Fprintf(r.w, "Properties Touched:      %d\n", countProperties(result.Changes))
}

// PrintErrors shows files that could not be processed
func (r *SummaryReporter) PrintErrors(result *ProcessResult) {
	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Problems", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, err := range result.Errors {
		fmt.Fprintf(r.w, "• %s\n", RenderStyle(StyleRed, err.Error(), r.useColors))
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// countProperties counts distinct property names among changes
func countProperties(changes []Change) int {
	seen := make(map[string]bool)
	for _, change := range changes {
		seen[change.Property] = true
	}
	return len(seen)
}
