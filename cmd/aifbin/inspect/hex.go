// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/report"
)

type hexParams struct {
	Offset  int64  `json:"offset"  flag:"offset"    desc:"start offset, relative to the selected section (0x prefix for hex)"`
	Length  int64  `json:"length"  flag:"length,n"  desc:"number of bytes to show (0 for everything selected)"`
	Section string `json:"section" flag:"section,s" desc:"limit to one section: header, metadata, raw, chunks, revisions, footer"`
	Chunk   int    `json:"chunk"   flag:"chunk"     desc:"limit to one chunk record by id" default:"-1"`
	Layout  bool   `json:"layout"  flag:"layout"    desc:"print the section layout instead of bytes"`
}

func hexCommand() *cli.Command {
	var params hexParams
	return &cli.Command{
		Name:    "hex",
		Summary: "Hex dump a container or one of its sections",
		Description: `Print the bytes of an AIF-BIN file as a hex dump: address, sixteen bytes
in hex, and their printable ASCII form.

--section and --chunk narrow the dump to the bytes one section or one
chunk record occupies, as far as decoding got; for a truncated section
the range ends where parsing stopped. Addresses are always absolute file
offsets.

--layout prints the byte range of every section in file order instead,
followed by any bytes no section claims.`,
		Usage: "aifbin hex <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Dump the fixed header",
				Command:     "aifbin hex --section header notes.aif-bin",
			},
			{
				Description: "Show the first 64 bytes of chunk 2",
				Command:     "aifbin hex --chunk 2 -n 64 notes.aif-bin",
			},
			{
				Description: "Find padding between sections",
				Command:     "aifbin hex --layout notes.aif-bin",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := singleFile("hex", args)
			if err != nil {
				return err
			}
			input, err := readContainer(path, os.Stdin)
			if err != nil {
				return err
			}
			if params.Layout {
				return writeLayout(os.Stdout, input.document)
			}
			return writeHex(os.Stdout, input.document, params)
		},
	}
}

// selectRange resolves --section and --chunk to a byte range of the
// source buffer.
func selectRange(document *aifbin.Document, params hexParams) (aifbin.ByteRange, error) {
	whole := aifbin.ByteRange{Start: 0, End: uint64(len(document.Source))}

	if params.Chunk >= 0 {
		if params.Section != "" {
			return aifbin.ByteRange{}, cli.Validation("--chunk and --section are mutually exclusive")
		}
		if params.Chunk >= len(document.Chunks) {
			return aifbin.ByteRange{}, cli.NotFound("chunk %d does not exist (%d chunks parsed)", params.Chunk, len(document.Chunks))
		}
		return document.Chunks[params.Chunk].Span, nil
	}

	if params.Section == "" {
		return whole, nil
	}
	section, err := aifbin.ParseSection(params.Section)
	if err != nil {
		return aifbin.ByteRange{}, cli.Validation("%v", err)
	}
	selected, ok := document.SectionRange(section)
	if !ok {
		return aifbin.ByteRange{}, cli.NotFound("%s section is %s", section, document.Status(section).State)
	}
	return selected, nil
}

func writeHex(w io.Writer, document *aifbin.Document, params hexParams) error {
	selected, err := selectRange(document, params)
	if err != nil {
		return err
	}
	if params.Offset < 0 || params.Length < 0 {
		return cli.Validation("--offset and --length must not be negative")
	}

	start := selected.Start + uint64(params.Offset)
	if start > selected.End {
		return cli.Validation("--offset %d is past the end of the %d-byte selection", params.Offset, selected.Len())
	}
	end := selected.End
	if params.Length > 0 {
		end = min(end, start+uint64(params.Length))
	}
	return report.HexDump(w, document.Source[start:end], start, 0)
}

func writeLayout(w io.Writer, document *aifbin.Document) error {
	layout := document.Layout()
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SECTION\tSTART\tEND\tBYTES\tSTATE\n")
	for _, region := range layout {
		fmt.Fprintf(tw, "%s\t0x%08x\t0x%08x\t%d\t%s\n",
			region.Section, region.Range.Start, region.Range.End, region.Range.Len(), region.State)
	}
	for _, gap := range aifbin.UnclaimedBytes(layout, uint64(len(document.Source))) {
		fmt.Fprintf(tw, "(unclaimed)\t0x%08x\t0x%08x\t%d\t\n", gap.Start, gap.End, gap.Len())
	}
	for _, section := range aifbin.AllSections {
		status := document.Status(section)
		if status.State == aifbin.SectionAbsent || status.State == aifbin.SectionOutOfRange {
			fmt.Fprintf(tw, "%s\t-\t-\t0\t%s\n", section, status.State)
		}
	}
	return tw.Flush()
}
