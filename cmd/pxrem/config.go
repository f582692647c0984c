package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/pxrem/internal/pxrem"
	"github.com/yacobolo/pxrem/internal/rem"
)

const defaultConfigPath = ".pxrem.yaml"

// Config file sections; env vars starting with one of them keep it as the
// first key segment (PXREM_CONVERT_OUTPUT_DIR -> convert.output-dir)
var configSections = []string{"convert", "report"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (PXREM_* prefix)
	if err := k.Load(env.Provider("PXREM_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	PXREM_CONVERT_SOURCE      -> convert.source
//	PXREM_REPORT_PRINT_LINES  -> report.print-lines
//	PXREM_BASE_FONT_SIZE      -> base-font-size
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "PXREM_"))
	for _, section := range configSections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildOptions constructs the conversion options from koanf state.
func buildOptions() (rem.Options, error) {
	opts := rem.DefaultOptions()

	base, err := rem.ParseFontSize(getStringWithFallback("base-font-size", "base-font-size", "16px"))
	if err != nil {
		return opts, err
	}
	opts.BaseFontSize = base

	mode, err := rem.ParseMode(getStringWithFallback("mode", "mode", string(rem.ModeRem)))
	if err != nil {
		return opts, err
	}
	opts.Mode = mode

	opts.Precision = getIntWithFallback("precision", "precision", rem.DefaultPrecision)
	if exceptions := k.Strings("round-exceptions"); len(exceptions) > 0 {
		opts.Exceptions = exceptions
	}

	return opts, opts.Validate()
}

// buildProcessConfig constructs the processor Config from koanf state.
func buildProcessConfig() (pxrem.Config, error) {
	opts, err := buildOptions()
	if err != nil {
		return pxrem.Config{}, err
	}

	config := pxrem.Config{
		SourceDir: getStringWithFallback("source", "convert.source", "."),
		OutputDir: getStringWithFallback("output-dir", "convert.output-dir", ""),
		Workers:   getIntWithFallback("workers", "convert.workers", 0),
		DryRun:    getBoolWithFallback("dry-run", "convert.dry-run", false),
		Verbose:   getBoolWithFallback("verbose", "verbose", false),
		Options:   opts,
	}

	// Handle includes: check flag key first, then config key
	if includes := k.Strings("include"); len(includes) > 0 {
		config.Includes = includes
	} else if includes := k.Strings("convert.include"); len(includes) > 0 {
		config.Includes = includes
	} else {
		config.Includes = pxrem.DefaultIncludes
	}

	if excludes := k.Strings("exclude"); len(excludes) > 0 {
		config.Excludes = excludes
	} else if excludes := k.Strings("convert.exclude"); len(excludes) > 0 {
		config.Excludes = excludes
	}

	return config, nil
}

// buildReportConfig constructs the reporter configuration from koanf state.
func buildReportConfig() pxrem.ReportConfig {
	return pxrem.ReportConfig{
		MaxChangesPerFile: getIntWithFallback("max-changes-per-file", "report.max-changes-per-file", 0),
		PrintLines:        getBoolWithFallback("print-lines", "report.print-lines", true),
		UseColors:         getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
