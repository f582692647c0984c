package pxrem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a path must be quiet before it is reported.
// Editors often trigger multiple writes per save.
const DefaultDebounce = 50 * time.Millisecond

// Directories never watched
var ignoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".idea":        true,
	".vscode":      true,
}

// Watcher reports stylesheets that change under a directory tree
type Watcher struct {
	Dir      string
	Match    func(path string) bool // Paths to report; nil reports every file
	Debounce time.Duration          // Default: DefaultDebounce
	Log      *zap.Logger
}

// Run watches Dir recursively and calls onChange, from the calling
// goroutine, for every matching path that was written or created.
// It blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("watcher")

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := addTree(fw, w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	log.Debug("Watching", zap.String("dir", w.Dir))

	// Trailing debounce: last event time per path
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}

			// New directories join the watch list
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fw, event.Name); err != nil {
						log.Warn("Failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if shouldIgnorePath(event.Name) || (w.Match != nil && !w.Match(event.Name)) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("Watch error", zap.Error(err))

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) >= debounce {
					delete(pending, path)
					log.Debug("Stylesheet changed", zap.String("file", path))
					onChange(path)
				}
			}
		}
	}
}

// addTree adds dir and all its subdirectories to the watcher
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // skip inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}
		if ignoreDirs[d.Name()] && path != dir {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// shouldIgnorePath returns true if any path component is an ignored directory
func shouldIgnorePath(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if ignoreDirs[part] {
			return true
		}
	}
	return false
}
