// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/aifbin"
)

// container is one decoded input file.
type container struct {
	// name is the display name: the base name of the path, or "stdin".
	name     string
	document *aifbin.Document
}

// singleFile checks that args holds exactly one input path.
func singleFile(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", cli.Validation("%s expects one file argument, got %d\n\nUsage: aifbin %s <file> [flags]", command, len(args), command)
	}
	return args[0], nil
}

// readContainer reads and decodes path. "-" reads stdin. Only a
// missing file, an I/O failure, or a bad magic signature is an error;
// damaged sections are left for the caller to report.
func readContainer(path string, stdin io.Reader) (*container, error) {
	var data []byte
	var err error
	name := filepath.Base(path)
	if path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%s: no such file", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	document, err := aifbin.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &container{name: name, document: document}, nil
}
