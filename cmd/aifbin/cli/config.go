// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/aifbin/aifbin/lib/config"
)

// ConfigFile is an embeddable struct that adds --config to a command's
// parameter struct. Without the flag, [config.Resolve] falls back to
// AIFBIN_CONFIG and then to the built-in defaults.
type ConfigFile struct {
	ConfigPath string `json:"-" flag:"config" desc:"configuration file (default: $AIFBIN_CONFIG)"`
}

// LoadConfig resolves and validates the configuration.
func (c *ConfigFile) LoadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// UseColor decides whether output to file is styled. noColor (from a
// --no-color flag) always wins; otherwise mode decides, with
// [config.ColorAuto] styling only terminals.
func UseColor(mode config.ColorMode, noColor bool, file *os.File) bool {
	if noColor {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTerminal(file)
	}
}
