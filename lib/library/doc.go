// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package library manages a directory of AIF-BIN files: the local
// collection that the desktop tools call "the library".
//
// Entries are plain files named "<stem>.aif-bin" directly inside the
// library directory; there is no index file, so entries copied in by
// hand are picked up immediately. Writes go through a temporary file
// and a rename.
//
// [Library.Scan] decodes every entry concurrently and reports a
// [Summary] per file, including its BLAKE3 content reference.
// [Library.Search] ranks chunks across the whole library with BM25,
// weighting the document title above chunk labels and chunk text.
package library
