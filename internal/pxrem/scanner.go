package pxrem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by include patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files dropped by exclude patterns or .gitignore
}

var (
	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// No .gitignore is fine
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from processing
//
// Two-layer filtering:
// 1. Exclude patterns, matched against the path relative to the source dir
// 2. Gitignore check, only for relative paths (paths within the project)
func shouldSkipFile(path, sourceDir string, excludes []string) bool {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range excludes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}

	// Absolute paths (like /tmp/...) should not be affected by project gitignore
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// DiscoverFiles expands include patterns under sourceDir and filters the result.
// The returned paths are unique and sorted.
func DiscoverFiles(sourceDir string, includes, excludes []string) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range includes {
		// Use doublestar for ** glob support
		matches, err := doublestar.FilepathGlob(filepath.Join(sourceDir, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match, sourceDir, excludes) {
				stats.FilesSkipped++
				continue
			}

			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// MatchesPath reports whether DiscoverFiles would select path
func MatchesPath(path, sourceDir string, includes, excludes []string) bool {
	rel, err := filepath.Rel(sourceDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}

	for _, pattern := range includes {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return !shouldSkipFile(path, sourceDir, excludes)
		}
	}
	return false
}
