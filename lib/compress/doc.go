// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress compresses payloads exported out of AIF-BIN
// containers (the raw original, a chunk's data). The container format
// itself is never compressed; this is an export convenience for
// "aifbin extract --compress".
//
// Output is always a self-describing frame (zstd or LZ4 frame
// format), so standard tools (zstd -d, lz4 -d) can read it and
// [Decompress] needs no size hint.
package compress
