package pxrem

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ToolName is appended to every reported change
const ToolName = "pxrem"

// Reporter handles formatting and outputting rewritten declarations
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	maxPerFile int
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReportConfig) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  shouldUseColors(config),
		printLines: config.PrintLines,
		maxPerFile: config.MaxChangesPerFile,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config ReportConfig) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintChanges outputs changes in golangci-lint format and returns how many
// were left out by the per-file limit
func (r *Reporter) PrintChanges(changes []Change) int {
	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sortChanges(sorted)

	shown, truncated := limitChanges(sorted, r.maxPerFile)
	for _, change := range shown {
		r.printChange(change)
	}
	return truncated
}

// printChange formats a single change in golangci-lint style
func (r *Reporter) printChange(change Change) {
	// Format: file:line:col: before -> after (pxrem)
	location := fmt.Sprintf("%s:%d:%d:", change.File, change.Line, change.Column)
	before := fmt.Sprintf("%s: %s;", change.Property, change.Before)
	after := strings.Join(change.After, " ")

	fmt.Fprintf(r.w, "%s %s -> %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(StyleYellow, before, r.useColors),
		RenderStyle(StyleGreen, after, r.useColors),
		RenderStyle(StyleGray, " ("+ToolName+")", r.useColors))

	// Print source line with caret indicator
	if r.printLines && change.Source != "" {
		fmt.Fprintf(r.w, "\t%s\n", change.Source)
		caret := r.buildCaretIndicator(change.Source, change.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column
// Tabs in the prefix are kept so the caret lines up with the source line
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	// Extract the prefix up to the column (0-based index = column - 1)
	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	prefix := sourceLine[:prefixLen]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary outputs the change count summary
func (r *Reporter) PrintSummary(result *ProcessResult, dryRun bool) {
	total := len(result.Changes)
	verb := "converted"
	if dryRun {
		verb = "to convert"
	}

	fmt.Fprintln(r.w, "")
	if result.TruncatedCount > 0 {
		fmt.Fprintf(r.w, "%s %s in %s (%s truncated)\n",
			pluralizeCount(total, "declaration", "declarations"), verb,
			pluralizeCount(result.FilesChanged, "file", "files"),
			pluralizeCount(result.TruncatedCount, "declaration", "declarations"))
	} else {
		fmt.Fprintf(r.w, "%s %s in %s\n",
			pluralizeCount(total, "declaration", "declarations"), verb,
			pluralizeCount(result.FilesChanged, "file", "files"))
	}

	if len(result.Errors) > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleRed,
			pluralizeCount(len(result.Errors), "file failed", "files failed"), r.useColors))
	}

	if dryRun && total > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run pxrem convert to apply these changes", r.useColors))
	}
}

// sortChanges orders changes by file, then line, then column
func sortChanges(changes []Change) {
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].File != changes[j].File {
			return changes[i].File < changes[j].File
		}
		if changes[i].Line != changes[j].Line {
			return changes[i].Line < changes[j].Line
		}
		return changes[i].Column < changes[j].Column
	})
}

// limitChanges keeps at most maxPerFile changes per file (0 = unlimited)
func limitChanges(changes []Change, maxPerFile int) ([]Change, int) {
	if maxPerFile <= 0 {
		return changes, 0
	}

	perFile := make(map[string]int)
	kept := make([]Change, 0, len(changes))
	truncated := 0
	for _, change := range changes {
		if perFile[change.File] >= maxPerFile {
			truncated++
			continue
		}
		perFile[change.File]++
		kept = append(kept, change)
	}
	return kept, truncated
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
