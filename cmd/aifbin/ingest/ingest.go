// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

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
	"github.com/aifbin/aifbin/lib/config"
	libingest "github.com/aifbin/aifbin/lib/ingest"
	"github.com/aifbin/aifbin/lib/library"
)

type ingestParams struct {
	cli.ConfigFile
	cli.JSONOutput
	Output     string   `json:"output"      flag:"output,o"    desc:"output path (one input file only)"`
	Library    bool     `json:"library"     flag:"library,l"   desc:"add the containers to the library instead of writing beside the sources"`
	Force      bool     `json:"force"       flag:"force"       desc:"replace existing output files or library entries"`
	Title      string   `json:"title"       flag:"title"       desc:"document title (one input file only; default: first heading or file name)"`
	Tags       []string `json:"tags"        flag:"tag,t"       desc:"tag to record in the metadata (repeatable)"`
	MIMEType   string   `json:"mime_type"   flag:"mime-type"   desc:"override MIME type detection"`
	SplitLevel int      `json:"split_level" flag:"split-level" desc:"deepest Markdown heading level that starts a chunk (default: from config)"`
}

// result is the per-file outcome, printed as a line or as JSON.
type result struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Chunks      int    `json:"chunks"`
	Bytes       int    `json:"bytes"`
	Checksum    string `json:"checksum"`
}

// Command returns the "ingest" command.
func Command() *cli.Command {
	var params ingestParams
	return &cli.Command{
		Name:    "ingest",
		Summary: "Convert source files into containers",
		Description: `Convert text, Markdown, or any other file into an AIF-BIN container.

Markdown is split into chunks at headings (down to --split-level),
with fenced code blocks as code chunks and tables as JSON table
chunks. Other text becomes a single text chunk. Binary files keep
their bytes in the original-raw section and get one text chunk noting
that no text was extracted.

Each input becomes <name>.aif-bin beside the source, the path given
by --output, or, with --library, an entry in the library. Existing
files are never replaced without --force.`,
		Usage: "aifbin ingest <file>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Convert a Markdown file next to itself",
				Command:     "aifbin ingest notes.md",
			},
			{
				Description: "Add a set of documents to the library with tags",
				Command:     "aifbin ingest --library -t research -t 2026 papers/*.md",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("ingest expects at least one file\n\nUsage: aifbin ingest <file>... [flags]")
			}
			if len(args) > 1 && (params.Output != "" || params.Title != "") {
				return cli.Validation("--output and --title need exactly one input file, got %d", len(args))
			}
			if params.Output != "" && params.Library {
				return cli.Validation("--output and --library are mutually exclusive")
			}
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}

			var store *library.Library
			if params.Library {
				store, err = library.Open(cfg.Library.Path, library.WithLogger(logger))
				if err != nil {
					return err
				}
			}

			results := make([]result, 0, len(args))
			for _, source := range args {
				converted, err := ingestFile(source, params, cfg)
				if err != nil {
					return err
				}
				destination := params.Output
				switch {
				case store != nil:
					destination, err = saveToLibrary(store, source, converted.Bytes, params.Force)
				case destination == "":
					destination = defaultDestination(source)
					err = cli.WriteOutput(destination, converted.Bytes, params.Force)
				default:
					err = cli.WriteOutput(destination, converted.Bytes, params.Force)
				}
				if err != nil {
					return err
				}
				logger.Info("ingested file",
					"source", source,
					"destination", destination,
					"chunks", len(converted.ChunkOffsets),
					"bytes", len(converted.Bytes),
				)
				results = append(results, result{
					Source:      source,
					Destination: destination,
					Chunks:      len(converted.ChunkOffsets),
					Bytes:       len(converted.Bytes),
					Checksum:    fmt.Sprintf("0x%016x", converted.Checksum),
				})
			}

			if done, err := params.EmitJSON(results); done {
				return err
			}
			return writeResults(os.Stdout, results)
		},
	}
}

func writeResults(w io.Writer, results []result) error {
	for _, entry := range results {
		if _, err := fmt.Fprintf(w, "%s -> %s (%d chunks, %d bytes)\n", entry.Source, entry.Destination, entry.Chunks, entry.Bytes); err != nil {
			return err
		}
	}
	return nil
}

// ingestFile reads and converts one source file.
func ingestFile(source string, params ingestParams, cfg *config.Config) (*aifbin.Encoded, error) {
	content, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("%s: no such file", source)
		}
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return convert(filepath.Base(source), content, params, cfg)
}

func convert(name string, content []byte, params ingestParams, cfg *config.Config) (*aifbin.Encoded, error) {
	splitLevel := params.SplitLevel
	if splitLevel <= 0 {
		splitLevel = cfg.Ingest.MarkdownSplitLevel
	}
	input, err := libingest.Convert(name, content, libingest.Options{
		Title:      params.Title,
		Tags:       params.Tags,
		SplitLevel: splitLevel,
		MIMEType:   params.MIMEType,
	})
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", name, err)
	}
	encoded, err := aifbin.Encode(input, aifbin.WithFooterIndex(cfg.Ingest.FooterIndex))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return encoded, nil
}

// saveToLibrary stores data under the source's stem and returns the
// entry name.
func saveToLibrary(store *library.Library, source string, data []byte, force bool) (string, error) {
	name := library.NormalizeName(stem(source))
	var err error
	if force {
		err = store.Save(name, data)
	} else {
		err = store.Create(name, data)
	}
	var nameErr *library.NameError
	switch {
	case err == nil:
		return name, nil
	case errors.Is(err, library.ErrExists):
		return "", cli.Conflict("library entry %s already exists (use --force to replace it)", name)
	case errors.As(err, &nameErr):
		return "", cli.Validation("%v", err)
	default:
		return "", err
	}
}

// defaultDestination is the source path with its extension replaced:
// "docs/notes.md" becomes "docs/notes.aif-bin".
func defaultDestination(source string) string {
	return filepath.Join(filepath.Dir(source), stem(source)+library.Extension)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
