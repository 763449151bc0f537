// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package bm25 ranks text with the Okapi BM25 algorithm. The library
// package indexes every chunk of every stored container as one
// [Document] whose fields carry the document title, chunk label, and
// chunk text at different weights.
//
// Field weights scale term frequencies, which approximates per-field
// BM25 well for corpora of a few thousand documents. The index is
// built once by [New] and is read-only afterwards.
package bm25
