// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the self-describing value model carried inside
// AIF-BIN containers and the encodings that move it around.
//
// Three formats meet here, each with one job:
//
//   - MessagePack is the wire format of every serialized-map payload
//     inside a container: document metadata, per-chunk metadata, and
//     revision deltas. [DecodeMap] and [EncodeMap] preserve map key
//     order so a decode/encode cycle is byte-stable.
//   - JSON is the human-facing rendering (CLI output, pack manifests).
//     [Value.MarshalJSON] writes map entries in wire order.
//   - CBOR is an export format for tooling that wants typed binary
//     output. It uses Core Deterministic Encoding (RFC 8949 §4.2), so
//     map keys are sorted and the same document always exports to the
//     same bytes.
//
// Decoding untrusted payloads never panics and never fails the caller.
// A payload that cannot be decoded produces a [MapResult] whose Err is
// a [*DecodeError]; the surrounding container keeps decoding:
//
//	result := codec.DecodeMap(payload)
//	if result.Err != nil {
//		logger.Warn("metadata unreadable", "reason", result.Err.Reason)
//	}
//	title := result.Value.GetString("title")
//
// Declared lengths are checked against the bytes that remain before
// any allocation, and nesting is capped at [MaxDepth], so a hostile
// payload costs at most a linear scan of its own bytes.
package codec
