// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the aifbin
// command.
//
// Configuration comes from a single file named by the --config flag
// or the AIFBIN_CONFIG environment variable, in that order (see
// [Resolve]). There is no search path: when neither is set the
// built-in [Default] applies, so the same invocation always reads the
// same settings.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${XDG_DATA_HOME}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Library, Ingest, Report
//   - [Default] -- returns a Config with built-in defaults
//   - [Resolve], [Load], and [LoadFile] -- the entry points for loading
//
// This package depends on no other AIF-BIN packages.
package config
