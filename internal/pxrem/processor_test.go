package pxrem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/pxrem/internal/rem"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewProcessor_InvalidOptions(t *testing.T) {
	_, err := NewProcessor(Config{Options: rem.Options{BaseFontSize: -1}}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, rem.ErrInvalidBaseFontSize)
}

func TestNewProcessor_Defaults(t *testing.T) {
	p, err := NewProcessor(Config{Options: rem.DefaultOptions()}, nil)
	require.NoError(t, err)

	cfg := p.Config()
	assert.Equal(t, ".", cfg.SourceDir)
	assert.Equal(t, DefaultIncludes, cfg.Includes)
}

func TestProcessor_RunInPlace(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.css": ".a { margin: 20px; }\n",
		"b.css": ".b { color: red; }\n",
	})

	p, err := NewProcessor(Config{
		SourceDir: dir,
		Workers:   2,
		Options:   rem.DefaultOptions(),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.FilesChanged)
	assert.Equal(t, 1, result.FilesWritten)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "margin", result.Changes[0].Property)

	assert.Equal(t, ".a { margin: 1.25rem; }\n", readFile(t, filepath.Join(dir, "a.css")))
	assert.Equal(t, ".b { color: red; }\n", readFile(t, filepath.Join(dir, "b.css")))

	// Second run finds nothing left to convert
	result, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
	assert.Zero(t, result.FilesWritten)
}

func TestProcessor_RunOutputDir(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeFiles(t, src, map[string]string{
		"nested/a.css": ".a { padding: 8px 12pt; }",
		"plain.css":    ".p { color: blue; }",
	})

	opts := rem.DefaultOptions()
	opts.Mode = rem.ModePxRem
	p, err := NewProcessor(Config{SourceDir: src, OutputDir: out, Options: opts}, nil)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesWritten)

	// Sources are untouched
	assert.Equal(t, ".a { padding: 8px 12pt; }", readFile(t, filepath.Join(src, "nested", "a.css")))
	assert.Equal(t, ".a { padding: 8px 16px; padding: 0.5rem 1rem; }", readFile(t, filepath.Join(out, "nested", "a.css")))
	assert.Equal(t, ".p { color: blue; }", readFile(t, filepath.Join(out, "plain.css")))
}

func TestProcessor_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": ".a { margin: 16px; }"})

	p, err := NewProcessor(Config{SourceDir: dir, DryRun: true, Options: rem.DefaultOptions()}, nil)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, []string{"margin: 1rem;"}, result.Changes[0].After)
	assert.Zero(t, result.FilesWritten)
	assert.Equal(t, ".a { margin: 16px; }", readFile(t, filepath.Join(dir, "a.css")))
}

func TestProcessor_CollectsFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": ".a { margin: 16px; }"})

	// A regular file where the output directory should be
	blocker := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	p, err := NewProcessor(Config{SourceDir: dir, OutputDir: blocker, Options: rem.DefaultOptions()}, nil)
	require.NoError(t, err)

	result, err := p.Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Errors, 1)
	assert.Len(t, result.Changes, 1)
	assert.Zero(t, result.FilesWritten)
}

func TestProcessor_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.css": ".a { margin: 16px; }"})

	p, err := NewProcessor(Config{SourceDir: dir, Options: rem.DefaultOptions()}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Equal(t, ".a { margin: 16px; }", readFile(t, filepath.Join(dir, "a.css")))
}

func TestProcessor_Selects(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(src, "dist")

	p, err := NewProcessor(Config{
		SourceDir: src,
		OutputDir: out,
		Excludes:  []string{"vendor/**"},
		Options:   rem.DefaultOptions(),
	}, nil)
	require.NoError(t, err)

	assert.True(t, p.Selects(filepath.Join(src, "a.css")))
	assert.False(t, p.Selects(filepath.Join(out, "a.css")))
	assert.False(t, p.Selects(filepath.Join(src, "vendor", "a.css")))
	assert.False(t, p.Selects(filepath.Join(src, "a.txt")))
}
