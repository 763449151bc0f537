// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"errors"
	"log/slog"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/config"
	liblibrary "github.com/aifbin/aifbin/lib/library"
)

// Command returns the "library" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "library",
		Summary: "Manage the local container library",
		Description: `List, add, inspect, and search the AIF-BIN files in the local library.

The library is a flat directory of .aif-bin files, configured by
library.path (default ~/.local/share/aifbin/library). Entries are named
by file name; the extension may be omitted. Commands that take a
<ref> also accept a content reference such as "aif-3f2a9c1b" as
printed by "library scan".`,
		Subcommands: []*cli.Command{
			listCommand(),
			addCommand(),
			showCommand(),
			removeCommand(),
			renameCommand(),
			exportCommand(),
			scanCommand(),
			searchCommand(),
		},
	}
}

// openLibrary loads the configuration and opens the configured
// library.
func openLibrary(configFile *cli.ConfigFile, logger *slog.Logger) (*liblibrary.Library, *config.Config, error) {
	cfg, err := configFile.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := liblibrary.Open(cfg.Library.Path, liblibrary.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// classify maps library errors onto command error categories so they
// get the right exit status.
func classify(err error) error {
	var nameErr *liblibrary.NameError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, liblibrary.ErrNotFound):
		return &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	case errors.Is(err, liblibrary.ErrExists):
		return &cli.ToolError{Category: cli.CategoryConflict, Err: err}
	case errors.As(err, &nameErr):
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	default:
		return err
	}
}

func requireArgs(command string, args []string, count int, usage string) error {
	if len(args) != count {
		return cli.Validation("library %s expects %d argument(s), got %d\n\nUsage: aifbin library %s %s", command, count, len(args), command, usage)
	}
	return nil
}
