// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefix-N" where N is a
// monotonically increasing integer. Use it for entry names that must
// not collide within one test binary.
//
//	name := testutil.UniqueID("report") + ".aif-bin" // "report-1.aif-bin"
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
