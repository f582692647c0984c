// Package pxrem rewrites px and pt lengths in stylesheets to rem.
//
// It wires the conversion engine in internal/rem to files: discovery with
// include/exclude globs, a stylesheet rewriter built on the tdewolff CSS
// lexer, a parallel batch processor, a watcher, and reporters.
package pxrem

import (
	"github.com/yacobolo/pxrem/internal/rem"
)

// Config holds processor configuration
type Config struct {
	SourceDir string   // "web/styles"
	OutputDir string   // Mirror output here; empty rewrites files in place
	Includes  []string // ["**/*.css"]
	Excludes  []string // ["vendor/**"]
	Workers   int      // Parallel files (default: runtime.NumCPU())
	DryRun    bool     // Compute changes without writing files
	Verbose   bool     // Debug logging
	Options   rem.Options
}

// Change records one rewritten declaration
type Change struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`   // 1-based
	Column   int      `json:"column"` // 1-based, start of the property name
	Property string   `json:"property"`
	Before   string   `json:"before"` // Original value as written
	After    []string `json:"after"`  // Emitted declarations, in order
	Source   string   `json:"source,omitempty"`
}

// FileResult is the outcome for a single stylesheet
type FileResult struct {
	Path       string
	OutputPath string
	Changes    []Change
	Written    bool
}

// ProcessResult contains processing stats
type ProcessResult struct {
	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int
	FilesChanged    int
	FilesWritten    int
	Files           []FileResult
	Changes         []Change
	TruncatedCount  int // Changes removed from listings due to limits
	Warnings        []string
	Errors          []error
}

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputChanges lists each rewritten declaration in golangci-lint style (CI-friendly)
	OutputChanges OutputFormat = "changes"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows changes and statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// ReportConfig controls reporters
type ReportConfig struct {
	MaxChangesPerFile int  // 0 = unlimited (default)
	PrintLines        bool // Show source lines with changes (default: true)
	UseColors         bool // Force color output (default: auto-detect)
}
