// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders decoded AIF-BIN containers for people: the
// forensic report printed by "aifbin info" and the hex dump printed
// by "aifbin hex".
//
// Styling uses lipgloss with an explicitly chosen color profile, so
// output is identical whether or not the process has a terminal. With
// Options.Color false the report is plain text. Code chunks shown in
// verbose mode are highlighted with chroma.
package report
