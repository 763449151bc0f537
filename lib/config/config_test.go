// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/aifbin/aifbin/lib/testutil"
)

func TestDefault(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_DATA_HOME", "")
	cfg := Default()

	if cfg.Library.Path != "/home/tester/.local/share/aifbin/library" {
		t.Errorf("library.path = %s", cfg.Library.Path)
	}
	if !cfg.Ingest.FooterIndex || cfg.Ingest.MarkdownSplitLevel != 2 {
		t.Errorf("ingest defaults = %+v", cfg.Ingest)
	}
	if cfg.Report.Color != ColorAuto || cfg.Report.HexBytes != 50 {
		t.Errorf("report defaults = %+v", cfg.Report)
	}
	if cfg.Path() != "" {
		t.Errorf("default config has path %q", cfg.Path())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultHonorsXDGDataHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := Default().Library.Path; got != "/data/aifbin/library" {
		t.Errorf("library.path = %s", got)
	}
}

func TestLoadWithoutEnvironment(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("expected defaults, got config from %s", cfg.Path())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	configPath := testutil.WriteFile(t, "", "aifbin.yaml", []byte(`
library:
  path: /srv/library
  scan_concurrency: 4
report:
  color: never
`))
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Library.Path != "/srv/library" || cfg.Library.ScanConcurrency != 4 {
		t.Errorf("library = %+v", cfg.Library)
	}
	if cfg.Report.Color != ColorNever {
		t.Errorf("report.color = %s", cfg.Report.Color)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Report.HexBytes != 50 || cfg.Ingest.MarkdownSplitLevel != 2 || !cfg.Ingest.FooterIndex {
		t.Errorf("defaults not preserved: %+v %+v", cfg.Report, cfg.Ingest)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %s, want %s", cfg.Path(), configPath)
	}
}

func TestResolvePrefersFlag(t *testing.T) {
	directory := t.TempDir()
	flagPath := testutil.WriteFile(t, directory, "flag.yaml", []byte("library:\n  path: /from/flag\n"))
	environmentPath := testutil.WriteFile(t, directory, "env.yaml", []byte("library:\n  path: /from/env\n"))
	t.Setenv(EnvironmentVariable, environmentPath)

	cfg, err := Resolve(flagPath)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Library.Path != "/from/flag" {
		t.Errorf("library.path = %s, want /from/flag", cfg.Library.Path)
	}

	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Library.Path != "/from/env" {
		t.Errorf("library.path = %s, want /from/env", cfg.Library.Path)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile of a missing file succeeded")
	}
	bad := testutil.WriteFile(t, "", "bad.yaml", []byte("library: [unterminated"))
	if _, err := LoadFile(bad); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("LoadFile of invalid YAML = %v", err)
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("AIFBIN_TEST_SET", "value")
	t.Setenv("AIFBIN_TEST_EMPTY", "")
	tests := []struct {
		input string
		want  string
	}{
		{"${AIFBIN_TEST_SET}/x", "value/x"},
		{"${AIFBIN_TEST_EMPTY:-fallback}", "fallback"},
		{"${AIFBIN_TEST_UNSET_VAR}", ""},
		{"${AIFBIN_TEST_EMPTY:-${AIFBIN_TEST_SET}/nested}", "value/nested"},
		{"plain/path", "plain/path"},
	}
	for _, test := range tests {
		if got := expandVars(test.input); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestLibraryPathExpansion(t *testing.T) {
	t.Setenv("AIFBIN_TEST_ROOT", "/mnt/docs")
	configPath := testutil.WriteFile(t, "", "aifbin.yaml", []byte("library:\n  path: ${AIFBIN_TEST_ROOT}/library/\n"))
	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Library.Path != "/mnt/docs/library" {
		t.Errorf("library.path = %s", cfg.Library.Path)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Library.Path = ""
	cfg.Library.ScanConcurrency = -1
	cfg.Ingest.MarkdownSplitLevel = 9
	cfg.Report.Color = "sometimes"
	cfg.Report.HexBytes = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate accepted an invalid config")
	}
	for _, key := range []string{"library.path", "library.scan_concurrency", "ingest.markdown_split_level", "report.color", "report.hex_bytes"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("Validate error does not mention %s: %v", key, err)
		}
	}
}
