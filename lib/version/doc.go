// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the aifbin
// binary.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When they are not injected (go install, test runs) the commit and
// dirty flag fall back to the VCS stamp the Go toolchain records in
// the binary, if any.
//
// Formatting functions produce human-readable version strings:
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for "aifbin version"
//   - [Full] -- Info plus the Go version, platform, and the container
//     format versions this build reads and writes
//   - [Short] -- just the version number
package version
