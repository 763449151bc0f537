// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"equal", []byte{1, 2, 3}, []byte{1, 2, 3}, -1},
		{"both empty", nil, []byte{}, -1},
		{"middle", []byte{1, 2, 3}, []byte{1, 9, 3}, 1},
		{"prefix", []byte{1, 2}, []byte{1, 2, 3}, 2},
		{"first", []byte{0}, []byte{1}, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := FirstDifference(test.a, test.b); got != test.want {
				t.Errorf("FirstDifference = %d, want %d", got, test.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	data := []byte("0123456789abcdefghij")
	if got := window(data, 10); !strings.HasPrefix(got, "[2:18] ") {
		t.Errorf("window = %q", got)
	}
	if got := window(data, len(data)+contextBytes); !strings.Contains(got, "end of data") {
		t.Errorf("window past end = %q", got)
	}
}

func TestWriteReadFile(t *testing.T) {
	directory := t.TempDir()
	path := WriteFile(t, directory, filepath.Join("nested", "a.bin"), []byte{0xde, 0xad})
	if filepath.Dir(path) != filepath.Join(directory, "nested") {
		t.Errorf("path = %s", path)
	}
	RequireEqualBytes(t, ReadFile(t, path), []byte{0xde, 0xad}, "fixture contents")
}

func TestUniqueID(t *testing.T) {
	first, second := UniqueID("entry"), UniqueID("entry")
	if first == second || !strings.HasPrefix(first, "entry-") {
		t.Errorf("UniqueID returned %q then %q", first, second)
	}
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "buffered value"); got != 7 {
		t.Errorf("RequireReceive = %d", got)
	}
}

func TestFormatMessage(t *testing.T) {
	if got := formatMessage(nil); got != "(no message)" {
		t.Errorf("empty = %q", got)
	}
	if got := formatMessage([]any{"chunk %d", 3}); got != "chunk 3" {
		t.Errorf("format = %q", got)
	}
}
