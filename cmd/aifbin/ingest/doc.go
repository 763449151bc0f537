// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package ingest implements "aifbin ingest", which converts source
// files with lib/ingest and writes the containers to disk or into the
// library.
package ingest
