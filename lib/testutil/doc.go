// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for AIF-BIN packages.
//
// [WriteFile] and [ReadFile] place fixtures under a test's temporary
// directory. [RequireEqualBytes] compares binary output and reports
// the first differing offset with a short hex window around it, which
// is far easier to act on than two full dumps of a container.
// [RequireErrorIs] and [RequireReceive] cover the remaining checks
// that would otherwise repeat in every package. [UniqueID] generates
// distinct names for library entries created in one test.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package imports no other AIF-BIN packages, so every package's
// tests can use it without an import cycle.
package testutil
