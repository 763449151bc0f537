// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
)

// CreateOutput opens path for writing. An existing file is a
// [CategoryConflict] error unless force is set, in which case it is
// truncated.
func CreateOutput(path string, force bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, Conflict("%s already exists (use --force to overwrite)", path)
		}
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return file, nil
}

// WriteOutput writes data to path with the semantics of
// [CreateOutput].
func WriteOutput(path string, data []byte, force bool) error {
	file, err := CreateOutput(path, force)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
