// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantPrint bool
	}{
		{"nil", nil, 0, false},
		{"exit error", &ExitError{Code: 3}, 3, false},
		{"wrapped exit error", fmt.Errorf("verify: %w", &ExitError{Code: 1}), 1, false},
		{"validation", Validation("expected 1 argument, got %d", 0), 2, true},
		{"not found", NotFound("no entry %q", "notes"), 1, true},
		{"plain", errors.New("boom"), 1, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, printed := ExitStatus(test.err)
			if code != test.wantCode || printed != test.wantPrint {
				t.Errorf("ExitStatus() = (%d, %v), want (%d, %v)", code, printed, test.wantCode, test.wantPrint)
			}
		})
	}
}

func TestToolErrorUnwrap(t *testing.T) {
	sentinel := errors.New("entry missing")
	err := NotFound("library: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is did not find the wrapped sentinel")
	}
	if err.Error() != "library: entry missing" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Category != CategoryNotFound {
		t.Errorf("Category = %q, want %q", err.Category, CategoryNotFound)
	}
}
