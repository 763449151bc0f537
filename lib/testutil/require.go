// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"
)

// contextBytes is how many bytes RequireEqualBytes shows on each side
// of the first difference.
const contextBytes = 8

// RequireEqualBytes fails the test if got and want differ, reporting
// the lengths and the first differing offset.
//
//	testutil.RequireEqualBytes(t, encoded.Bytes, golden, "re-encoded container")
func RequireEqualBytes(t testing.TB, got, want []byte, msgAndArgs ...any) {
	t.Helper()
	offset := FirstDifference(got, want)
	if offset < 0 {
		return
	}
	t.Fatalf("%s: bytes differ at offset %d (got %d bytes, want %d)\n  got:  %s\n  want: %s",
		formatMessage(msgAndArgs), offset, len(got), len(want),
		window(got, offset), window(want, offset))
}

// FirstDifference returns the first offset at which a and b differ,
// or -1 if they are equal. A strict prefix differs at the shorter
// length.
func FirstDifference(a, b []byte) int {
	shorter := min(len(a), len(b))
	for index := 0; index < shorter; index++ {
		if a[index] != b[index] {
			return index
		}
	}
	if len(a) != len(b) {
		return shorter
	}
	return -1
}

func window(data []byte, offset int) string {
	start := max(0, offset-contextBytes)
	end := min(len(data), offset+contextBytes)
	if start >= end {
		return fmt.Sprintf("[%d:] (end of data)", start)
	}
	return fmt.Sprintf("[%d:%d] %s", start, end, hex.EncodeToString(data[start:end]))
}

// RequireErrorIs fails the test unless errors.Is(err, target).
func RequireErrorIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: error %v does not match %v", formatMessage(msgAndArgs), err, target)
	}
}

// RequireReceive reads one value from ch within timeout, or fails the
// test.
//
//	hits := testutil.RequireReceive(t, results, 5*time.Second, "waiting for search")
func RequireReceive[T any](t interface {
	Helper()
	Fatalf(format string, args ...any)
}, ch <-chan T, timeout time.Duration, msgAndArgs ...any) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed without sending a value: %s", formatMessage(msgAndArgs))
		}
		return v
	case <-time.After(timeout):
		t.Fatalf("timed out after %v: %s", timeout, formatMessage(msgAndArgs))
	}
	panic("unreachable")
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
