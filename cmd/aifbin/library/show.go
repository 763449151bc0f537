// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"log/slog"
	"os"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/report"
)

type showParams struct {
	cli.ConfigFile
	Verbose bool `json:"verbose"  flag:"verbose,v" desc:"add hex snippets and code previews for every chunk"`
	NoColor bool `json:"no_color" flag:"no-color"  desc:"disable colors even on a terminal"`
}

func showCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print the forensic report of a library entry",
		Description: `Print the same report as "aifbin info" for a library entry, found by
name or content reference.`,
		Usage: "aifbin library show <ref> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show an entry by content reference",
				Command:     "aifbin library show aif-3f2a9c1b",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("show", args, 1, "<ref> [flags]"); err != nil {
				return err
			}
			store, cfg, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			name, err := store.Resolve(ctx, args[0])
			if err != nil {
				return classify(err)
			}
			document, err := store.Open(name)
			if err != nil {
				return classify(err)
			}
			return report.Render(os.Stdout, document, report.Options{
				Name:     name,
				Verbose:  params.Verbose,
				Color:    cli.UseColor(cfg.Report.Color, params.NoColor, os.Stdout),
				HexBytes: cfg.Report.HexBytes,
			})
		},
	}
}
