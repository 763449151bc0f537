// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	inputs := map[string][]byte{
		"empty":    {},
		"text":     []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200)),
		"binary":   bytes.Repeat([]byte{0x00, 0xff, 0x10, 0x7f}, 1000),
		"single":   {0x42},
		"markdown": []byte("# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"),
	}
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		for name, input := range inputs {
			t.Run(algorithm.String()+"/"+name, func(t *testing.T) {
				compressed, err := Compress(input, algorithm)
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}
				if algorithm != None && Detect(compressed) != algorithm {
					t.Errorf("Detect = %s, want %s", Detect(compressed), algorithm)
				}
				decompressed, err := Decompress(compressed, algorithm)
				if err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if !bytes.Equal(decompressed, input) {
					t.Errorf("roundtrip changed %d bytes into %d", len(input), len(decompressed))
				}
			})
		}
	}
}

func TestCompressShrinksText(t *testing.T) {
	input := []byte(strings.Repeat("repetitive text compresses well ", 500))
	for _, algorithm := range []Algorithm{LZ4, Zstd} {
		compressed, err := Compress(input, algorithm)
		if err != nil {
			t.Fatalf("%s Compress: %v", algorithm, err)
		}
		if len(compressed) >= len(input)/4 {
			t.Errorf("%s compressed %d bytes to %d", algorithm, len(input), len(compressed))
		}
	}
}

func TestDecompressCorrupt(t *testing.T) {
	garbage := []byte("definitely not a frame")
	for _, algorithm := range []Algorithm{LZ4, Zstd} {
		if _, err := Decompress(garbage, algorithm); err == nil {
			t.Errorf("%s Decompress accepted garbage", algorithm)
		}
	}
	if Detect(garbage) != None {
		t.Error("Detect misidentified plain bytes")
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input string
		want  Algorithm
	}{
		{"", None}, {"none", None}, {"lz4", LZ4}, {"LZ4", LZ4}, {"zstd", Zstd}, {"zst", Zstd},
	}
	for _, test := range tests {
		got, err := ParseAlgorithm(test.input)
		if err != nil || got != test.want {
			t.Errorf("ParseAlgorithm(%q) = %s, %v; want %s", test.input, got, err, test.want)
		}
	}
	if _, err := ParseAlgorithm("gzip"); err == nil {
		t.Error("ParseAlgorithm(gzip) succeeded")
	}
	for _, algorithm := range []Algorithm{None, LZ4, Zstd} {
		parsed, err := ParseAlgorithm(algorithm.String())
		if err != nil || parsed != algorithm {
			t.Errorf("ParseAlgorithm(%s.String()) = %s, %v", algorithm, parsed, err)
		}
	}
	if Zstd.Extension() != ".zst" || LZ4.Extension() != ".lz4" || None.Extension() != "" {
		t.Error("Extension mismatch")
	}
}

func TestNewWriterNoneDoesNotClose(t *testing.T) {
	var destination bytes.Buffer
	writer, err := NewWriter(&destination, None)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := writer.Write([]byte("pass")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if destination.String() != "pass" {
		t.Errorf("destination = %q", destination.String())
	}
}
