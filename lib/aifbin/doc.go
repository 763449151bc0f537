// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package aifbin encodes and decodes AIF-BIN containers.
//
// An AIF-BIN file is a fixed 64-byte header followed by up to five
// sections located by absolute offsets stored in that header:
//
//	+--------+----------+-------------+--------+-----------+--------+
//	| header | metadata | originalRaw | chunks | revisions | footer |
//	+--------+----------+-------------+--------+-----------+--------+
//
// All integers are little-endian. An offset of [AbsentOffset]
// (0xFFFFFFFFFFFFFFFF) marks a section as absent. Metadata, chunk
// metadata, and revision deltas are MessagePack payloads decoded by
// lib/codec.
//
// Decoding treats the buffer as untrusted. Only a bad magic signature
// is fatal ([*MagicError]); every other problem stays local to the
// section it occurs in and is recorded in [Document.Sections]:
//
//	document, err := aifbin.Decode(data)
//	if err != nil {
//		return err // not an AIF-BIN file
//	}
//	for _, chunk := range document.Chunks {
//		fmt.Println(chunk.ID, chunk.Type, len(chunk.Data))
//	}
//	report := aifbin.Verify(document)
//
// Sequences (chunks, revisions, the footer index) stop at the first
// record whose declared lengths do not fit in the buffer and keep the
// records parsed before it. Declared counts are kept alongside so
// callers can tell a truncated file from a complete one.
//
// Encoding lays the sections out contiguously after the header, in
// the order above, and finishes with a footer whose checksum is the
// wrapping 64-bit sum of every preceding byte ([Checksum]).
//
// Decoded payload slices alias the input buffer. Callers that need to
// mutate or release the buffer while keeping the document should use
// [Document.Clone].
package aifbin
