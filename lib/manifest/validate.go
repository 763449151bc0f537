// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
)

// Validate checks a Manifest for structural issues and returns
// human-readable descriptions. An empty list means the manifest can
// be built, apart from files that may fail to read.
//
// Checks:
//   - metadata, chunk metadata, and revision deltas must be objects
//   - every chunk needs a type that parses as a name or a 32-bit code
//   - raw and every chunk need exactly one of text, file, or data
//   - a revision sets at most one of timestamp and time, and time must
//     be RFC 3339
func Validate(manifest *Manifest) []string {
	var issues []string

	if manifest.Metadata != nil && manifest.Metadata.Kind() != codec.KindMap {
		issues = append(issues, fmt.Sprintf("metadata must be an object, got %s", manifest.Metadata.Kind()))
	}

	if manifest.Raw != nil {
		issues = append(issues, validatePayload(*manifest.Raw, "raw")...)
	}

	for index, chunk := range manifest.Chunks {
		prefix := fmt.Sprintf("chunks[%d]", index)
		if _, err := ChunkType(chunk.Type); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", prefix, err))
		}
		if chunk.Metadata != nil && chunk.Metadata.Kind() != codec.KindMap {
			issues = append(issues, fmt.Sprintf("%s: metadata must be an object, got %s", prefix, chunk.Metadata.Kind()))
		}
		issues = append(issues, validatePayload(chunk.Payload, prefix)...)
	}

	if manifest.Revisions != nil {
		for index, revision := range *manifest.Revisions {
			prefix := fmt.Sprintf("revisions[%d]", index)
			if revision.Delta != nil && revision.Delta.Kind() != codec.KindMap {
				issues = append(issues, fmt.Sprintf("%s: delta must be an object, got %s", prefix, revision.Delta.Kind()))
			}
			if revision.Time != "" {
				if revision.Timestamp != 0 {
					issues = append(issues, fmt.Sprintf("%s: timestamp and time are mutually exclusive", prefix))
				}
				if _, err := time.Parse(time.RFC3339, revision.Time); err != nil {
					issues = append(issues, fmt.Sprintf("%s: time %q is not RFC 3339", prefix, revision.Time))
				}
			}
		}
	}

	return issues
}

func validatePayload(payload Payload, prefix string) []string {
	var sources []string
	if payload.Text != nil {
		sources = append(sources, "text")
	}
	if payload.File != "" {
		sources = append(sources, "file")
	}
	if payload.Data != nil {
		sources = append(sources, "data")
	}
	switch len(sources) {
	case 1:
		return nil
	case 0:
		return []string{fmt.Sprintf("%s: one of text, file, or data is required", prefix)}
	default:
		return []string{fmt.Sprintf("%s: %s are mutually exclusive", prefix, strings.Join(sources, " and "))}
	}
}

// ChunkType decodes a chunk "type" field: a JSON string naming the
// type (anything [aifbin.ParseChunkType] accepts) or a JSON number.
func ChunkType(raw json.RawMessage) (aifbin.ChunkType, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, fmt.Errorf("type is required")
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return aifbin.ParseChunkType(name)
	}

	var code uint32
	if err := json.Unmarshal(raw, &code); err != nil {
		return 0, fmt.Errorf("type %s is neither a name nor a 32-bit code", raw)
	}
	return aifbin.ChunkType(code), nil
}
