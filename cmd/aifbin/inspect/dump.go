// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/codec"
)

type dumpParams struct {
	Format  string `json:"format"  flag:"format,f"  desc:"output format: json, cbor, or cbor-diag" default:"json"`
	Compact bool   `json:"compact" flag:"compact,c" desc:"compact JSON output (no indentation)"`
	Binary  bool   `json:"binary"  flag:"binary"    desc:"include payloads that are not UTF-8 text"`
}

func dumpCommand() *cli.Command {
	var params dumpParams
	return &cli.Command{
		Name:    "dump",
		Summary: "Print the decoded document as JSON or CBOR",
		Description: `Decode an AIF-BIN file and write the whole document in a machine-readable
form: section states, metadata, every chunk with its metadata and
payload, the revision log, and the footer.

Payloads that read as text appear as text. Binary payloads (images,
PDFs) are left out unless --binary is given, in which case they are
written as base64 in JSON and as byte strings in CBOR.

--format cbor writes CBOR with Core Deterministic Encoding, so the same
file always dumps to the same bytes. --format cbor-diag writes the CBOR
in diagnostic notation for reading.`,
		Usage: "aifbin dump <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Pretty-print a container as JSON",
				Command:     "aifbin dump notes.aif-bin",
			},
			{
				Description: "Export chunk labels with jq",
				Command:     "aifbin dump -c notes.aif-bin | jq '.chunks[].label'",
			},
			{
				Description: "Export deterministic CBOR",
				Command:     "aifbin dump --format cbor notes.aif-bin > notes.cbor",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := singleFile("dump", args)
			if err != nil {
				return err
			}
			input, err := readContainer(path, os.Stdin)
			if err != nil {
				return err
			}
			return writeDump(os.Stdout, input, params)
		},
	}
}

func writeDump(w io.Writer, input *container, params dumpParams) error {
	view := newDocumentView(input.name, input.document, viewOptions{Binary: params.Binary})

	switch params.Format {
	case "json", "":
		var output []byte
		var err error
		if params.Compact {
			output, err = json.Marshal(view)
		} else {
			output, err = json.MarshalIndent(view, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(output))
		return err

	case "cbor", "cbor-diag":
		output, err := codec.MarshalCBOR(view)
		if err != nil {
			return fmt.Errorf("encode CBOR: %w", err)
		}
		if params.Format == "cbor" {
			_, err = w.Write(output)
			return err
		}
		diagnostic, err := codec.DiagnoseCBOR(output)
		if err != nil {
			return fmt.Errorf("diagnose CBOR: %w", err)
		}
		_, err = fmt.Fprintln(w, diagnostic)
		return err

	default:
		return cli.Validation("unknown --format %q (expected json, cbor, or cbor-diag)", params.Format)
	}
}
