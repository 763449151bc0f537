// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
)

// Build turns a manifest into encoder input, reading file payloads
// relative to baseDir. It refuses a manifest with Validate issues.
func Build(manifest *Manifest, baseDir string) (aifbin.DocumentInput, error) {
	if issues := Validate(manifest); len(issues) > 0 {
		return aifbin.DocumentInput{}, &InvalidError{Issues: issues}
	}

	input := aifbin.DocumentInput{
		Version:  manifest.Version,
		Metadata: objectOrEmpty(manifest.Metadata),
		Chunks:   make([]aifbin.ChunkInput, 0, len(manifest.Chunks)),
	}

	if manifest.Raw != nil {
		raw, err := manifest.Raw.bytes(baseDir)
		if err != nil {
			return aifbin.DocumentInput{}, fmt.Errorf("raw: %w", err)
		}
		input.OriginalRaw = raw
		input.HasOriginalRaw = true
	}

	for index, chunk := range manifest.Chunks {
		chunkType, _ := ChunkType(chunk.Type)
		data, err := chunk.Payload.bytes(baseDir)
		if err != nil {
			return aifbin.DocumentInput{}, fmt.Errorf("chunks[%d]: %w", index, err)
		}
		input.Chunks = append(input.Chunks, aifbin.ChunkInput{
			Type:     chunkType,
			Metadata: objectOrEmpty(chunk.Metadata),
			Data:     data,
		})
	}

	if manifest.Revisions != nil {
		input.HasRevisions = true
		for _, revision := range *manifest.Revisions {
			timestamp := revision.Timestamp
			if revision.Time != "" {
				parsed, _ := time.Parse(time.RFC3339, revision.Time)
				timestamp = uint64(parsed.Unix())
			}
			input.Revisions = append(input.Revisions, aifbin.RevisionInput{
				Description: revision.Description,
				Delta:       objectOrEmpty(revision.Delta),
				Timestamp:   timestamp,
			})
		}
	}

	return input, nil
}

// EncodeOptions returns the encoder options the manifest selects,
// using defaultFooterIndex when footer_index is not set.
func (manifest *Manifest) EncodeOptions(defaultFooterIndex bool) []aifbin.EncodeOption {
	footerIndex := defaultFooterIndex
	if manifest.FooterIndex != nil {
		footerIndex = *manifest.FooterIndex
	}
	return []aifbin.EncodeOption{aifbin.WithFooterIndex(footerIndex)}
}

// InvalidError reports the Validate issues that stopped Build.
type InvalidError struct {
	Issues []string
}

func (e *InvalidError) Error() string {
	return "invalid manifest:\n  " + strings.Join(e.Issues, "\n  ")
}

// IsInvalid reports whether err is or wraps an *InvalidError.
func IsInvalid(err error) bool {
	var invalid *InvalidError
	return errors.As(err, &invalid)
}

func (payload Payload) bytes(baseDir string) ([]byte, error) {
	switch {
	case payload.Text != nil:
		return []byte(*payload.Text), nil
	case payload.File != "":
		path := payload.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", payload.File, err)
		}
		return data, nil
	default:
		return payload.Data, nil
	}
}

func objectOrEmpty(value *codec.Value) codec.Value {
	if value == nil {
		return codec.Map()
	}
	return *value
}
