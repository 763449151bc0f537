// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/compress"
	"github.com/aifbin/aifbin/lib/ingest"
)

type extractParams struct {
	Raw      bool   `json:"raw"      flag:"raw"        desc:"extract the original raw payload"`
	Chunk    int    `json:"chunk"    flag:"chunk"      desc:"extract the data of one chunk by id" default:"-1"`
	Output   string `json:"output"   flag:"output,o"   desc:"write to this file instead of stdout"`
	Compress string `json:"compress" flag:"compress,z" desc:"compress the output: none, lz4, or zstd" default:"none"`
	Force    bool   `json:"force"    flag:"force"      desc:"overwrite --output and allow binary output to a terminal"`
}

func extractCommand() *cli.Command {
	var params extractParams
	return &cli.Command{
		Name:    "extract",
		Summary: "Write a payload out of a container",
		Description: `Copy one payload out of an AIF-BIN file: the original raw document
(--raw) or the data of one content chunk (--chunk N). Exactly one of
the two must be given.

The payload is written byte for byte, optionally compressed with LZ4
or Zstandard frames. Writing binary data to a terminal is refused
unless --force is given.`,
		Usage: "aifbin extract <file> (--raw | --chunk N) [flags]",
		Examples: []cli.Example{
			{
				Description: "Recover the original PDF",
				Command:     "aifbin extract --raw -o report.pdf report.aif-bin",
			},
			{
				Description: "Extract a code chunk compressed with zstd",
				Command:     "aifbin extract --chunk 3 -z zstd -o main.py.zst project.aif-bin",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := singleFile("extract", args)
			if err != nil {
				return err
			}
			algorithm, err := compress.ParseAlgorithm(params.Compress)
			if err != nil {
				return cli.Validation("%v", err)
			}
			input, err := readContainer(path, os.Stdin)
			if err != nil {
				return err
			}
			payload, what, err := selectPayload(input.document, params)
			if err != nil {
				return err
			}

			if params.Output == "" {
				if cli.IsTerminal(os.Stdout) && !params.Force && (algorithm != compress.None || ingest.IsBinary(payload)) {
					return cli.Validation("refusing to write binary %s to a terminal (use --output or --force)", what)
				}
				return writePayload(os.Stdout, payload, algorithm)
			}

			file, err := cli.CreateOutput(params.Output, params.Force)
			if err != nil {
				return err
			}
			if err := writePayload(file, payload, algorithm); err != nil {
				file.Close()
				return fmt.Errorf("writing %s: %w", params.Output, err)
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", params.Output, err)
			}
			logger.Info("extracted payload",
				"source", path,
				"payload", what,
				"bytes", len(payload),
				"compression", algorithm.String(),
				"output", params.Output,
			)
			return nil
		},
	}
}

// selectPayload returns the payload named by --raw or --chunk and a
// short description of it for messages.
func selectPayload(document *aifbin.Document, params extractParams) ([]byte, string, error) {
	switch {
	case params.Raw && params.Chunk >= 0:
		return nil, "", cli.Validation("--raw and --chunk are mutually exclusive")
	case params.Raw:
		if !document.RawPresent {
			return nil, "", cli.NotFound("the container has no original raw section (%s)", document.Status(aifbin.SectionOriginalRaw).State)
		}
		return document.OriginalRaw, "original raw payload", nil
	case params.Chunk >= 0:
		if params.Chunk >= len(document.Chunks) {
			return nil, "", cli.NotFound("chunk %d does not exist (%d chunks parsed)", params.Chunk, len(document.Chunks))
		}
		chunk := document.Chunks[params.Chunk]
		return chunk.Data, fmt.Sprintf("chunk %d (%s)", chunk.ID, chunk.Type), nil
	default:
		return nil, "", cli.Validation("one of --raw or --chunk is required")
	}
}

func writePayload(w io.Writer, payload []byte, algorithm compress.Algorithm) error {
	writer, err := compress.NewWriter(w, algorithm)
	if err != nil {
		return err
	}
	if _, err := writer.Write(payload); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
