// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash computes BLAKE3 content digests of AIF-BIN files.
//
// The library uses digests as stable content identifiers: a file
// renamed on disk keeps its digest, and two files with the same bytes
// share one. Digests are keyed with a fixed domain key so they never
// collide with plain BLAKE3 hashes of the same bytes.
//
//   - [HashBytes], [HashReader], [HashFile] compute a [Digest]
//   - [FormatDigest] and [ParseDigest] convert to and from hex
//   - [ShortRef] renders the "aif-" prefixed form shown in listings
package binhash
