// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so main can pick an exit
// code without parsing error text: 2 for validation, 1 otherwise.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing arguments,
	// wrong argument count, unparseable values.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file or library entry
	// does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryConflict indicates the operation would overwrite an
	// existing entry or file.
	CategoryConflict ErrorCategory = "conflict"
)

// ToolError is a categorized error returned by commands. It wraps an
// inner error, preserving the chain for errors.Is and errors.As.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}
