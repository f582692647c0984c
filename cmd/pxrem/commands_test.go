package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a subcommand with settings that isolate it from the
// environment and from flags set by earlier tests
func execute(t *testing.T, command string, args ...string) (string, error) {
	t.Helper()
	resetKoanf()

	full := []string{
		command,
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--mode", "rem",
		"--base-font-size", "16px",
		"--quiet=false",
	}
	full = append(full, args...)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(full)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeStylesheet(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValueCommand(t *testing.T) {
	out, err := execute(t, "value", "margin", "20px auto", "font-size", "20.3px")
	require.NoError(t, err)
	assert.Equal(t, "margin: 1.25rem auto;\nfont-size: 1.26875rem;\n", out)
}

func TestValueCommand_PxRem(t *testing.T) {
	out, err := execute(t, "value", "border", "7px solid #f90 !important", "--mode", "px-rem")
	require.NoError(t, err)
	assert.Equal(t, "border: 7px solid #f90 !important;\nborder: 0.4375rem solid #f90 !important;\n", out)
}

func TestValueCommand_OddArguments(t *testing.T) {
	_, err := execute(t, "value", "margin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property and value pairs")
}

func TestValueCommand_InvalidBase(t *testing.T) {
	_, err := execute(t, "value", "margin", "20px", "--base-font-size", "0")
	require.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeStylesheet(t, dir, "main.css", ".a {\n  margin: 20px;\n  color: red;\n}\n")

	out, err := execute(t, "convert", "--source", dir, "--print-lines=false")
	require.NoError(t, err)
	assert.Contains(t, out, "main.css:2:3:")
	assert.Contains(t, out, "margin: 1.25rem;")
	assert.Contains(t, out, "1 declaration converted in 1 file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".a {\n  margin: 1.25rem;\n  color: red;\n}\n", string(data))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeStylesheet(t, dir, "main.css", ".a { padding: 8px; }")

	out, err := execute(t, "check", "--source", dir, "--output-format", "json")
	require.ErrorIs(t, err, errChangesFound)

	var report struct {
		DryRun  bool `json:"dry_run"`
		Summary struct {
			Declarations int `json:"declarations"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Summary.Declarations)

	// check never writes
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".a { padding: 8px; }", string(data))
}

func TestCheckCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	writeStylesheet(t, dir, "main.css", ".a { padding: 0.5rem; }")

	_, err := execute(t, "check", "--source", dir, "--output-format", "summary")
	require.NoError(t, err)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".pxrem.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "base-font-size: 16px")
	assert.Contains(t, string(data), "convert:")
	assert.Contains(t, string(data), "report:")

	// The generated file loads cleanly
	resetKoanf()
	require.NoError(t, loadConfigFromPath(".pxrem.yaml"))
	config, err := buildProcessConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, config.Excludes)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".pxrem.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".pxrem.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".pxrem.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: rem")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "pxrem dev\n", buf.String())
}
