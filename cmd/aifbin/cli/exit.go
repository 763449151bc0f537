// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output, as "aifbin verify" does before exiting 1 on warnings.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitStatus returns the process exit code for an error returned by
// [Command.Execute] and whether main should print the error first. An
// error carrying its own exit code has already reported itself.
func ExitStatus(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), false
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) && toolErr.Category == CategoryValidation {
		return 2, true
	}
	return 1, true
}
