// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is not
// given.
const EnvironmentVariable = "AIFBIN_CONFIG"

// ColorMode selects when terminal output is styled.
type ColorMode string

const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output unconditionally.
	ColorAlways ColorMode = "always"
	// ColorNever produces plain text.
	ColorNever ColorMode = "never"
)

// Config is the master configuration for aifbin.
type Config struct {
	// Library configures the local container collection.
	Library LibraryConfig `yaml:"library"`

	// Ingest configures conversion of source files.
	Ingest IngestConfig `yaml:"ingest"`

	// Report configures the forensic report and hex dumps.
	Report ReportConfig `yaml:"report"`

	// path is the file the config was loaded from, empty for Default.
	path string
}

// LibraryConfig configures the local library.
type LibraryConfig struct {
	// Path is the library directory.
	// Default: ${XDG_DATA_HOME:-~/.local/share}/aifbin/library
	Path string `yaml:"path"`

	// ScanConcurrency bounds how many files scan and search decode at
	// once. Zero means one per CPU.
	ScanConcurrency int `yaml:"scan_concurrency"`
}

// IngestConfig configures "aifbin ingest".
type IngestConfig struct {
	// FooterIndex controls whether converted containers carry a chunk
	// index in the footer.
	// Default: true
	FooterIndex bool `yaml:"footer_index"`

	// MarkdownSplitLevel is the deepest heading level that starts a
	// new chunk.
	// Default: 2
	MarkdownSplitLevel int `yaml:"markdown_split_level"`
}

// ReportConfig configures "aifbin info" and "aifbin hex".
type ReportConfig struct {
	// Color is auto, always, or never.
	// Default: auto
	Color ColorMode `yaml:"color"`

	// HexBytes is the length of the per-chunk hex snippet in verbose
	// reports.
	// Default: 50
	HexBytes int `yaml:"hex_bytes"`
}

// Default returns the built-in configuration, used as the base before
// a config file is applied and on its own when there is no file.
func Default() *Config {
	cfg := &Config{
		Library: LibraryConfig{
			Path: "${XDG_DATA_HOME:-${HOME}/.local/share}/aifbin/library",
		},
		Ingest: IngestConfig{
			FooterIndex:        true,
			MarkdownSplitLevel: 2,
		},
		Report: ReportConfig{
			Color:    ColorAuto,
			HexBytes: 50,
		},
	}
	cfg.expandVariables()
	return cfg
}

// Resolve loads the configuration for one invocation: the file named
// by flagPath if non-empty, else the file named by AIFBIN_CONFIG,
// else Default.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	return Load()
}

// Load loads configuration from the file named by AIFBIN_CONFIG, or
// returns Default when the variable is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Keys
// missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.expandVariables()
	return cfg, nil
}

// Path returns the file the configuration was loaded from, or "" for
// the built-in defaults.
func (c *Config) Path() string { return c.path }

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	c.Library.Path = expandVars(c.Library.Path)
	if c.Library.Path != "" {
		c.Library.Path = filepath.Clean(c.Library.Path)
	}
}

// varPattern matches ${VAR} and ${VAR:-default}. A default holding
// another pattern does not match until the inner one is expanded.
var varPattern = regexp.MustCompile(`\$\{([^}:$]+)(?::-([^}$]*))?\}`)

// expandVars expands variables from the environment. Defaults may
// themselves reference variables ("${A:-${B}/x}"), so expansion is
// repeated from the innermost pattern outwards.
func expandVars(s string) string {
	for i := 0; i < 8; i++ {
		expanded := varPattern.ReplaceAllStringFunc(s, func(match string) string {
			parts := varPattern.FindStringSubmatch(match)
			if len(parts) < 2 {
				return match
			}
			if value := os.Getenv(parts[1]); value != "" {
				return value
			}
			if len(parts) >= 3 {
				return parts[2]
			}
			return ""
		})
		if expanded == s {
			break
		}
		s = expanded
	}
	return s
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Library.Path == "" {
		errs = append(errs, fmt.Errorf("library.path is required"))
	}
	if c.Library.ScanConcurrency < 0 {
		errs = append(errs, fmt.Errorf("library.scan_concurrency must not be negative, got %d", c.Library.ScanConcurrency))
	}
	if c.Ingest.MarkdownSplitLevel < 1 || c.Ingest.MarkdownSplitLevel > 6 {
		errs = append(errs, fmt.Errorf("ingest.markdown_split_level must be between 1 and 6, got %d", c.Ingest.MarkdownSplitLevel))
	}

	colorModes := []ColorMode{ColorAuto, ColorAlways, ColorNever}
	if !contains(colorModes, c.Report.Color) {
		errs = append(errs, fmt.Errorf("report.color must be one of: %v", colorModes))
	}
	if c.Report.HexBytes < 0 {
		errs = append(errs, fmt.Errorf("report.hex_bytes must not be negative, got %d", c.Report.HexBytes))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains[T comparable](slice []T, s T) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
