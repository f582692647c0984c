package pxrem

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	DryRun    bool        `json:"dry_run"`
	Summary   JSONSummary `json:"summary"`
	Changes   []Change    `json:"changes"`
	Errors    []string    `json:"errors"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesScanned    int `json:"files_scanned"`
	FilesSkipped    int `json:"files_skipped"`
	FilesChanged    int `json:"files_changed"`
	FilesWritten    int `json:"files_written"`
	Declarations    int `json:"declarations"`
	Errors          int `json:"errors"`
}

// WriteJSON writes the process result as JSON
func WriteJSON(w io.Writer, result *ProcessResult, dryRun bool) error {
	output := buildJSONOutput(result, dryRun)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts ProcessResult to JSONOutput
func buildJSONOutput(result *ProcessResult, dryRun bool) JSONOutput {
	changes := make([]Change, len(result.Changes))
	copy(changes, result.Changes)
	sortChanges(changes)

	errs := make([]string, len(result.Errors))
	for i, err := range result.Errors {
		errs[i] = err.Error()
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		DryRun:    dryRun,
		Summary: JSONSummary{
			FilesDiscovered: result.FilesDiscovered,
			FilesScanned:    result.FilesScanned,
			FilesSkipped:    result.FilesSkipped,
			FilesChanged:    result.FilesChanged,
			FilesWritten:    result.FilesWritten,
			Declarations:    len(result.Changes),
			Errors:          len(result.Errors),
		},
		Changes: changes,
		Errors:  errs,
	}
}
