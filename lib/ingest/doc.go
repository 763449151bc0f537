// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package ingest converts source files into AIF-BIN container input.
//
// [Convert] picks a converter from the file name and content:
//
//   - Markdown (.md, .markdown) is parsed with goldmark (GFM) and split
//     at headings. Prose becomes Text chunks labelled with the section
//     heading, fenced code becomes Code chunks carrying the language,
//     and tables become TableJSON chunks.
//   - Other text becomes one "Main Content" Text chunk.
//   - Binary content (NUL bytes, invalid UTF-8, PDF) becomes a single
//     "Notice" chunk; no extraction is attempted.
//
// In every case the original bytes are stored as the raw section and
// the document metadata records provenance (name, size, MIME type,
// conversion time) plus up to ten ISO dates found in the text.
package ingest
