// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package inspect implements the aifbin commands that read one
// container file: "info" (forensic report), "verify" (integrity
// check with an exit status), "dump" (JSON or CBOR export), "hex"
// (section-aware hex dump and layout), and "extract" (payload export,
// optionally compressed).
//
// Every command takes a file path, or "-" for stdin. A file without
// the AIF-BIN signature is an error; any other damage is decoded as
// far as possible and reported.
package inspect
