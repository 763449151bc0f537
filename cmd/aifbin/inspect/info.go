// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"log/slog"
	"os"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/report"
)

type infoParams struct {
	cli.JSONOutput
	cli.ConfigFile
	Verbose bool `json:"verbose"  flag:"verbose,v" desc:"add hex snippets and code previews for every chunk"`
	NoColor bool `json:"no_color" flag:"no-color"  desc:"disable colors even on a terminal"`
}

func infoCommand() *cli.Command {
	var params infoParams
	return &cli.Command{
		Name:    "info",
		Summary: "Print a forensic report of a container",
		Description: `Decode an AIF-BIN file and print every section: header offsets
with their validity, document metadata, the original raw payload, each
content chunk, the revision log, and the footer with its integrity
findings.

Damaged files are reported, not rejected: an offset pointing past the
end of the file is shown as INVALID (OOB), a section cut short as
TRUNCATED, and the rest of the file is still decoded. Only a file
without the AIF-BIN signature fails.

With --json, the decoded document is printed as JSON instead (the
same shape as "aifbin dump").`,
		Usage: "aifbin info <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Inspect a container",
				Command:     "aifbin info notes.aif-bin",
			},
			{
				Description: "Show chunk bytes and highlighted code",
				Command:     "aifbin info -v notes.aif-bin",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := singleFile("info", args)
			if err != nil {
				return err
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			input, err := readContainer(path, os.Stdin)
			if err != nil {
				return err
			}
			logger.Debug("decoded container", "file", path, "chunks", len(input.document.Chunks))

			if done, err := params.EmitJSON(newDocumentView(input.name, input.document, viewOptions{})); done {
				return err
			}
			return report.Render(os.Stdout, input.document, report.Options{
				Name:     input.name,
				Verbose:  params.Verbose,
				Color:    cli.UseColor(cfg.Report.Color, params.NoColor, os.Stdout),
				HexBytes: cfg.Report.HexBytes,
			})
		},
	}
}
