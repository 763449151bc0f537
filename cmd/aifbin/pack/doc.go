// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack implements "aifbin pack", which builds a container
// from a JSONC manifest read by lib/manifest.
package pack
