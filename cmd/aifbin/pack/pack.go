// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/library"
	"github.com/aifbin/aifbin/lib/manifest"
)

type packParams struct {
	cli.ConfigFile
	Output        string `json:"output"          flag:"output,o"        desc:"output path, or - for stdout (default: <manifest>.aif-bin beside the manifest)"`
	Force         bool   `json:"force"           flag:"force"           desc:"overwrite an existing output file"`
	NoFooterIndex bool   `json:"no_footer_index" flag:"no-footer-index" desc:"write an empty footer index regardless of manifest and config"`
	Check         bool   `json:"check"           flag:"check"           desc:"validate the manifest and its files without writing anything"`
}

// Command returns the "pack" command.
func Command() *cli.Command {
	var params packParams
	return &cli.Command{
		Name:    "pack",
		Summary: "Build a container from a JSONC manifest",
		Description: `Assemble an AIF-BIN file from a manifest that lists metadata, the
original raw payload, chunks, and revisions. The manifest is JSON with
comments and trailing commas allowed. JSON objects keep their key order
when written as MessagePack.

Payloads come from inline "text", base64 "data", or a "file" path
relative to the manifest. Chunk types are names (text, table_json,
image, audio, video, code) or numeric codes.

Whether the footer carries a chunk index is taken from the manifest's
"footer_index", then from ingest.footer_index in the configuration.
--no-footer-index overrides both.`,
		Usage: "aifbin pack <manifest.jsonc> [flags]",
		Examples: []cli.Example{
			{
				Description: "Build notes.aif-bin next to notes.jsonc",
				Command:     "aifbin pack notes.jsonc",
			},
			{
				Description: "Check a manifest without writing",
				Command:     "aifbin pack --check notes.jsonc",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("pack expects one manifest argument, got %d\n\nUsage: aifbin pack <manifest.jsonc> [flags]", len(args))
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			manifestPath := args[0]

			encoded, err := buildContainer(manifestPath, cfg.Ingest.FooterIndex, params.NoFooterIndex)
			if err != nil {
				return err
			}
			if params.Check {
				return writeCheck(os.Stdout, manifestPath, encoded)
			}

			output := params.Output
			if output == "" {
				output = defaultOutput(manifestPath)
			}
			if output == "-" {
				_, err := os.Stdout.Write(encoded.Bytes)
				return err
			}
			if err := cli.WriteOutput(output, encoded.Bytes, params.Force); err != nil {
				return err
			}
			logger.Info("packed container",
				"manifest", manifestPath,
				"output", output,
				"bytes", len(encoded.Bytes),
				"chunks", len(encoded.ChunkOffsets),
			)
			return nil
		},
	}
}

// buildContainer reads, validates, and encodes the manifest at path.
// defaultFooterIndex applies when the manifest is silent, and
// forceNoIndex overrides the manifest.
func buildContainer(path string, defaultFooterIndex, forceNoIndex bool) (*aifbin.Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%s: no such file", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	parsed, err := manifest.Parse(data)
	if err != nil {
		return nil, cli.Validation("%s: %v", path, err)
	}
	if issues := manifest.Validate(parsed); len(issues) > 0 {
		return nil, cli.Validation("%s: invalid manifest:\n  %s", path, strings.Join(issues, "\n  "))
	}
	input, err := manifest.Build(parsed, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	options := parsed.EncodeOptions(defaultFooterIndex)
	if forceNoIndex {
		options = append(options, aifbin.WithoutFooterIndex())
	}
	encoded, err := aifbin.Encode(input, options...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return encoded, nil
}

// defaultOutput places the container beside its manifest:
// "docs/notes.jsonc" becomes "docs/notes.aif-bin".
func defaultOutput(manifestPath string) string {
	return filepath.Join(filepath.Dir(manifestPath), manifest.NameFromPath(manifestPath)+library.Extension)
}

// writeCheck prints the validation result for --check.
func writeCheck(w io.Writer, path string, encoded *aifbin.Encoded) error {
	_, err := fmt.Fprintf(w, "%s: OK (%d bytes, %d chunks, checksum 0x%016x)\n",
		path, len(encoded.Bytes), len(encoded.ChunkOffsets), encoded.Checksum)
	return err
}
