// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm selects how an exported payload is compressed.
type Algorithm uint8

const (
	// None passes bytes through unchanged.
	None Algorithm = iota

	// LZ4 writes the LZ4 frame format: fast, modest ratio, suited to
	// images and other already-dense payloads.
	LZ4

	// Zstd writes a zstd frame at the default level: better ratios
	// on text, Markdown, and JSON tables.
	Zstd
)

// Frame magic numbers, used by Detect.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (algorithm Algorithm) String() string {
	switch algorithm {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(algorithm))
	}
}

// Extension returns the conventional file suffix, "" for None.
func (algorithm Algorithm) Extension() string {
	switch algorithm {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	}
	return ""
}

// ParseAlgorithm parses "none", "lz4", or "zstd" (also "zst"). The
// empty string is None.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression algorithm %q (expected none, lz4, or zstd)", name)
	}
}

// Detect identifies a compressed frame by its magic number. Anything
// else is reported as None.
func Detect(data []byte) Algorithm {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	}
	return None
}

// zstdDecoder is shared; zstd.Decoder is safe for concurrent
// DecodeAll calls. Encoders are created per writer.
var zstdDecoder *zstd.Decoder

func init() {
	var err error
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

// Compress returns data compressed with algorithm. None returns data
// itself without copying.
func Compress(data []byte, algorithm Algorithm) ([]byte, error) {
	if algorithm == None {
		return data, nil
	}
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, algorithm)
	if err != nil {
		return nil, err
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("%s compress: %w", algorithm, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%s compress: %w", algorithm, err)
	}
	return buffer.Bytes(), nil
}

// Decompress reverses Compress. Frames carry their own sizes, so no
// length hint is needed.
func Decompress(data []byte, algorithm Algorithm) ([]byte, error) {
	switch algorithm {
	case None:
		return data, nil
	case Zstd:
		decoded, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return decoded, nil
	case LZ4:
		decoded, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm %s", algorithm)
	}
}

// NewWriter returns a writer that compresses into destination with
// algorithm. Close flushes the final frame but does not close
// destination. For None the writer passes bytes through.
func NewWriter(destination io.Writer, algorithm Algorithm) (io.WriteCloser, error) {
	switch algorithm {
	case None:
		return nopCloser{destination}, nil
	case LZ4:
		return lz4.NewWriter(destination), nil
	case Zstd:
		encoder, err := zstd.NewWriter(destination, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm %s", algorithm)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
