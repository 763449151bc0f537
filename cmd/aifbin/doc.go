// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Aifbin reads, verifies, and builds AIF-BIN containers.
//
// Usage:
//
//	aifbin info <file>             forensic report
//	aifbin verify <file>           integrity check (exit 1 on warnings)
//	aifbin dump <file>             JSON or CBOR export
//	aifbin hex <file>              section-aware hex dump and layout map
//	aifbin extract <file>          write a raw payload or chunk out
//	aifbin pack <manifest.jsonc>   build a container from a manifest
//	aifbin ingest <file>...        convert source files
//	aifbin library <command>       manage the local library
//
// Exit status is 0 on success, 1 on failure or a failed verification,
// and 2 on invalid usage.
package main
