// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package library implements the "aifbin library" command group over
// lib/library: list, add, show, remove, rename, export, scan, and
// search.
//
// Every subcommand reads library.path from the configuration. Library
// errors are mapped onto command error categories: a missing entry is
// not-found, a name collision is a conflict, and an unusable name is a
// validation error.
package library
