package pxrem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultIncludes matches every stylesheet under the source directory
var DefaultIncludes = []string{"**/*.css"}

// Processor converts the stylesheets selected by a Config
type Processor struct {
	config Config
	log    *zap.Logger
}

// NewProcessor validates the configuration and creates a processor.
// A nil logger disables logging.
func NewProcessor(config Config, log *zap.Logger) (*Processor, error) {
	if err := config.Options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if config.SourceDir == "" {
		config.SourceDir = "."
	}
	if len(config.Includes) == 0 {
		config.Includes = DefaultIncludes
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Processor{config: config, log: log.Named("processor")}, nil
}

// Run is the main entry point.
// Failures of individual files do not stop the run: they are collected in
// ProcessResult.Errors and returned combined. Only discovery failures and
// context cancellation return a nil result.
func (p *Processor) Run(ctx context.Context) (*ProcessResult, error) {
	start := time.Now()
	result := &ProcessResult{}

	// 1. Discover stylesheets
	files, stats, err := DiscoverFiles(p.config.SourceDir, p.config.Includes, p.config.Excludes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesDiscovered = stats.FilesDiscovered
	result.FilesScanned = stats.FilesScanned
	result.FilesSkipped = stats.FilesSkipped

	p.log.Debug("Discovered stylesheets",
		zap.String("source", p.config.SourceDir),
		zap.Int("files", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	// 2. Rewrite files in parallel
	fileResults := make([]FileResult, len(files))
	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fr, err := p.ProcessFile(path)
			if err != nil {
				p.log.Warn("Failed to process stylesheet", zap.String("file", path), zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			fileResults[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 3. Aggregate in discovery order
	for _, fr := range fileResults {
		result.Files = append(result.Files, fr)
		result.Changes = append(result.Changes, fr.Changes...)
		if len(fr.Changes) > 0 {
			result.FilesChanged++
		}
		if fr.Written {
			result.FilesWritten++
		}
	}
	result.Errors = multierr.Errors(errs)

	p.log.Info("Processed stylesheets",
		zap.Int("files", result.FilesScanned),
		zap.Int("changed", result.FilesChanged),
		zap.Int("declarations", len(result.Changes)),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("elapsed", time.Since(start)))

	return result, errs
}

// ProcessFile rewrites a single stylesheet and writes the output unless the
// processor is in dry-run mode. Files rewritten in place are only written
// when their content changed.
func (p *Processor) ProcessFile(path string) (FileResult, error) {
	fr := FileResult{Path: path, OutputPath: p.outputPath(path)}

	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return fr, fmt.Errorf("read file: %w", err)
	}

	out, changes := Rewrite(string(content), path, p.config.Options)
	fr.Changes = changes

	p.log.Debug("Rewrote stylesheet", zap.String("file", path), zap.Int("declarations", len(changes)))

	if p.config.DryRun {
		return fr, nil
	}
	if fr.OutputPath == path && out == string(content) {
		return fr, nil
	}

	if err := os.MkdirAll(filepath.Dir(fr.OutputPath), 0755); err != nil {
		return fr, fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(fr.OutputPath, []byte(out), 0644); err != nil {
		return fr, fmt.Errorf("write file: %w", err)
	}
	fr.Written = true

	return fr, nil
}

// outputPath mirrors path under OutputDir, or returns it unchanged for in-place rewriting
func (p *Processor) outputPath(path string) string {
	if p.config.OutputDir == "" {
		return path
	}

	rel, err := filepath.Rel(p.config.SourceDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.Join(p.config.OutputDir, rel)
}

// Selects reports whether a changed path should be processed: it must match
// the include and exclude patterns and must not be one of our own outputs
func (p *Processor) Selects(path string) bool {
	if p.config.OutputDir != "" && filepath.Clean(p.config.OutputDir) != filepath.Clean(p.config.SourceDir) {
		if rel, err := filepath.Rel(p.config.OutputDir, path); err == nil && rel != ".." && !strings.HasPrefix(filepath.ToSlash(rel), "../") {
			return false
		}
	}
	return MatchesPath(path, p.config.SourceDir, p.config.Includes, p.config.Excludes)
}

func (p *Processor) workers() int {
	if p.config.Workers > 0 {
		return p.config.Workers
	}
	return runtime.NumCPU()
}

// Config returns the effective configuration after defaults were applied
func (p *Processor) Config() Config {
	return p.config
}
