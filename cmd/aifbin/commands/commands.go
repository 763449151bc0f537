// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete aifbin command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	ingestcmd "github.com/aifbin/aifbin/cmd/aifbin/ingest"
	"github.com/aifbin/aifbin/cmd/aifbin/inspect"
	librarycmd "github.com/aifbin/aifbin/cmd/aifbin/library"
	packcmd "github.com/aifbin/aifbin/cmd/aifbin/pack"
	"github.com/aifbin/aifbin/lib/version"
)

// Root builds and returns the aifbin command tree.
func Root() *cli.Command {
	subcommands := inspect.Commands()
	subcommands = append(subcommands,
		packcmd.Command(),
		ingestcmd.Command(),
		librarycmd.Command(),
		&cli.Command{
			Name:    "version",
			Summary: "Print version information",
			Run: func(_ context.Context, args []string, _ *slog.Logger) error {
				fmt.Printf("aifbin %s\n", version.Full())
				return nil
			},
		},
	)
	return &cli.Command{
		Name: "aifbin",
		Description: `aifbin: read, verify, and build AIF-BIN containers.

An AIF-BIN file bundles a document's metadata, its original bytes,
typed content chunks, and a revision log behind a fixed binary header
with a checksummed footer. The inspection commands decode damaged files
as far as they can and report what is wrong instead of refusing them.`,
		Subcommands: subcommands,
	}
}
