// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the aifbin CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a parameter struct whose tagged
// fields become flags, and a Run function. Commands are assembled into a
// tree in cmd/aifbin/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Parameter structs compose the shared flag groups by embedding:
//
//   - [JSONOutput] adds --json and [JSONOutput.EmitJSON].
//   - [ConfigFile] adds --config and [ConfigFile.LoadConfig].
//
// Errors returned from Run are mapped to exit codes by [ExitStatus]:
// an [ExitError] exits silently with its code, a validation
// [ToolError] exits 2, anything else exits 1.
package cli
