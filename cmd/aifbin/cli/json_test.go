// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aifbin/aifbin/lib/config"
)

func TestEmitJSONTo(t *testing.T) {
	var buffer bytes.Buffer

	disabled := JSONOutput{}
	done, err := disabled.EmitJSONTo(&buffer, map[string]int{"chunks": 2})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("disabled EmitJSONTo = (%v, %v), wrote %q", done, err, buffer.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	done, err = enabled.EmitJSONTo(&buffer, map[string]int{"chunks": 2})
	if !done || err != nil {
		t.Fatalf("enabled EmitJSONTo = (%v, %v)", done, err)
	}
	if want := "{\n  \"chunks\": 2\n}\n"; buffer.String() != want {
		t.Errorf("output = %q, want %q", buffer.String(), want)
	}
}

func TestEmitJSONToNilSlice(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{OutputJSON: true}
	var entries []string
	if _, err := output.EmitJSONTo(&buffer, entries); err != nil {
		t.Fatalf("EmitJSONTo: %v", err)
	}
	if buffer.String() != "[]\n" {
		t.Errorf("output = %q, want []", buffer.String())
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(config.EnvironmentVariable, "")
	directory := t.TempDir()

	path := filepath.Join(directory, "aifbin.yaml")
	if err := os.WriteFile(path, []byte("library:\n  path: /srv/aifbin\nreport:\n  color: never\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	file := ConfigFile{ConfigPath: path}
	cfg, err := file.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Library.Path != "/srv/aifbin" || cfg.Report.Color != config.ColorNever {
		t.Errorf("config = %+v", cfg)
	}

	invalid := filepath.Join(directory, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("report:\n  color: sometimes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	file = ConfigFile{ConfigPath: invalid}
	if _, err := file.LoadConfig(); err == nil {
		t.Error("LoadConfig accepted color: sometimes")
	}
}

func TestUseColor(t *testing.T) {
	// A regular file is never a terminal, so auto resolves to false.
	file, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	tests := []struct {
		mode    config.ColorMode
		noColor bool
		want    bool
	}{
		{config.ColorAlways, false, true},
		{config.ColorAlways, true, false},
		{config.ColorNever, false, false},
		{config.ColorAuto, false, false},
	}
	for _, test := range tests {
		if got := UseColor(test.mode, test.noColor, file); got != test.want {
			t.Errorf("UseColor(%q, %v) = %v, want %v", test.mode, test.noColor, got, test.want)
		}
	}
}
