// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads pack manifests: JSONC files (JSON with //
// and /* */ comments and trailing commas) that describe a container
// section by section.
//
//	{
//	  "metadata": {"title": "Release notes", "tags": ["release"]},
//	  "raw": {"file": "notes.md"},
//	  "chunks": [
//	    {"type": "text", "metadata": {"label": "Summary"}, "text": "..."},
//	    {"type": "code", "metadata": {"language": "go"}, "file": "main.go"},
//	    {"type": 42, "data": "AAEC"}, // unnamed type, base64 payload
//	  ],
//	  "revisions": [{"description": "initial", "time": "2026-01-02T03:04:05Z"}],
//	}
//
// The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes to a Manifest
//  2. Validate: structural checks, returned as a list of issues
//  3. Build: read file payloads and produce aifbin.DocumentInput
//
// JSON objects decode into codec values with their key order intact,
// so the MessagePack written into the container follows the order in
// the manifest.
package manifest
