// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestHexDump(t *testing.T) {
	data := []byte("AIFBIN\x00\x01hello, world!!!\x7fxyz")
	var buffer bytes.Buffer
	if err := HexDump(&buffer, data, 0x40, 0); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2:\n%s", len(lines), buffer.String())
	}
	want := "0x00000040  41 49 46 42 49 4e 00 01  68 65 6c 6c 6f 2c 20 77  |AIFBIN..hello, w|"
	if lines[0] != want {
		t.Errorf("row 0 =\n%q\nwant\n%q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "0x00000050  6f 72 6c 64 21 21 21 7f  78 79 7a ") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "|orld!!!.xyz|") {
		t.Errorf("row 1 ascii = %q", lines[1])
	}
	if len(lines[1]) != len(lines[0])-5 {
		t.Errorf("short row is not padded: %d vs %d", len(lines[1]), len(lines[0]))
	}
}

func TestHexDumpLimit(t *testing.T) {
	var buffer bytes.Buffer
	if err := HexDump(&buffer, make([]byte, 100), 0, 32); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	output := buffer.String()
	if strings.Count(output, "\n") != 3 {
		t.Errorf("want 2 rows and a trailer:\n%s", output)
	}
	if !strings.Contains(output, "--- 68 more bytes hidden ---") {
		t.Errorf("missing trailer:\n%s", output)
	}
}

func TestHexDumpEmpty(t *testing.T) {
	var buffer bytes.Buffer
	if err := HexDump(&buffer, nil, 0, 0); err != nil {
		t.Fatalf("HexDump: %v", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("empty dump wrote %q", buffer.String())
	}
}
