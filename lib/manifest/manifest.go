// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/aifbin/aifbin/lib/codec"
)

// Manifest describes a container to build. Every field mirrors a
// section of the container; Metadata, chunk metadata, and revision
// deltas are arbitrary JSON objects and keep their key order.
type Manifest struct {
	// Version is the header version. Zero selects
	// aifbin.DefaultVersion.
	Version uint32 `json:"version,omitempty"`

	Metadata *codec.Value `json:"metadata,omitempty"`

	// Raw is the original-raw payload. Nil omits the section.
	Raw *Payload `json:"raw,omitempty"`

	Chunks []Chunk `json:"chunks"`

	// Revisions is the revision log. A present but empty list writes
	// an empty log; an absent list omits the section.
	Revisions *[]Revision `json:"revisions,omitempty"`

	// FooterIndex controls the footer's chunk index. Nil means the
	// caller's default.
	FooterIndex *bool `json:"footer_index,omitempty"`
}

// Payload names the bytes of a raw section or chunk. Exactly one
// source must be set.
type Payload struct {
	// Text is UTF-8 content written as is.
	Text *string `json:"text,omitempty"`

	// File is a path, relative paths resolving against the manifest's
	// directory.
	File string `json:"file,omitempty"`

	// Data is base64 in JSON.
	Data []byte `json:"data,omitempty"`
}

// Chunk is one content chunk.
type Chunk struct {
	// Type is a chunk type name ("text", "code", "table_json", ...) or
	// its numeric code. Codes without a name are allowed.
	Type json.RawMessage `json:"type"`

	Metadata *codec.Value `json:"metadata,omitempty"`

	Payload
}

// Revision is one entry of the revision log.
type Revision struct {
	Description string       `json:"description"`
	Delta       *codec.Value `json:"delta,omitempty"`

	// Timestamp is Unix seconds. Time is the same instant as an
	// RFC 3339 string; at most one of the two may be set.
	Timestamp uint64 `json:"timestamp,omitempty"`
	Time      string `json:"time,omitempty"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Manifest.
func Parse(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var manifest Manifest
	if err := json.Unmarshal(stripped, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return &manifest, nil
}

// ReadFile reads and parses a JSONC manifest file.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	manifest, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return manifest, nil
}

// NameFromPath strips the directory and extension from a manifest
// path: "docs/notes.jsonc" returns "notes".
func NameFromPath(path string) string {
	base := filepath.Base(path)
	extension := filepath.Ext(base)
	return strings.TrimSuffix(base, extension)
}
