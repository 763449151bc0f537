// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	liblibrary "github.com/aifbin/aifbin/lib/library"
)

type scanParams struct {
	cli.ConfigFile
	cli.JSONOutput
	Concurrency int `json:"concurrency" flag:"concurrency,j" desc:"files decoded at once (default: library.scan_concurrency)"`
}

func scanCommand() *cli.Command {
	var params scanParams
	return &cli.Command{
		Name:    "scan",
		Summary: "Decode and verify every library entry",
		Description: `Decode every entry in parallel and print one line per file: its
content reference, title, chunk and revision counts, checksum state,
and the number of integrity warnings. Files that are not AIF-BIN
containers are listed with their error.`,
		Usage:  "aifbin library scan [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("scan", args, 0, "[flags]"); err != nil {
				return err
			}
			store, cfg, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			concurrency := params.Concurrency
			if concurrency <= 0 {
				concurrency = cfg.Library.ScanConcurrency
			}
			summaries, err := store.Scan(ctx, concurrency)
			if err != nil {
				return err
			}
			logger.Debug("scanned library", "entries", len(summaries), "concurrency", concurrency)
			if done, err := params.EmitJSON(summaries); done {
				return err
			}
			return writeSummaries(os.Stdout, summaries)
		},
	}
}

func writeSummaries(w io.Writer, summaries []liblibrary.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "library is empty")
		return err
	}
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "NAME\tREF\tCHUNKS\tREVISIONS\tCHECKSUM\tWARNINGS\tTITLE")
	for _, summary := range summaries {
		if summary.Err != nil {
			fmt.Fprintf(writer, "%s\t-\t-\t-\t-\t-\terror: %v\n", summary.Name, summary.Err)
			continue
		}
		chunks := fmt.Sprintf("%d", summary.Chunks)
		if uint32(summary.Chunks) != summary.DeclaredChunks {
			chunks = fmt.Sprintf("%d/%d", summary.Chunks, summary.DeclaredChunks)
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
			summary.Name, summary.Ref, chunks, summary.Revisions, summary.Checksum, summary.Warnings, summary.Title)
	}
	return writer.Flush()
}

type searchParams struct {
	cli.ConfigFile
	cli.JSONOutput
	Limit int `json:"limit" flag:"limit,n" desc:"maximum results (0 for all)" default:"10"`
}

func searchCommand() *cli.Command {
	var params searchParams
	return &cli.Command{
		Name:    "search",
		Summary: "Full-text search across library chunks",
		Description: `Rank the text, code, and table chunks of every library entry against
a query with BM25. Document titles and chunk labels weigh more than
body text. Each result names the entry and chunk id, ready for
"aifbin extract --chunk".`,
		Usage: "aifbin library search <query>... [flags]",
		Examples: []cli.Example{
			{
				Description: "Find chunks about retention policy",
				Command:     "aifbin library search retention policy",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("library search expects a query\n\nUsage: aifbin library search <query>... [flags]")
			}
			if params.Limit < 0 {
				return cli.Validation("--limit must not be negative, got %d", params.Limit)
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			hits, err := store.Search(ctx, strings.Join(args, " "), params.Limit)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(hits); done {
				return err
			}
			return writeHits(os.Stdout, hits)
		},
	}
}

func writeHits(w io.Writer, hits []liblibrary.Hit) error {
	if len(hits) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "SCORE\tNAME\tCHUNK\tSNIPPET")
	for _, hit := range hits {
		fmt.Fprintf(writer, "%.3f\t%s\t%d\t%s\n", hit.Score, hit.Name, hit.ChunkID, hit.Snippet)
	}
	return writer.Flush()
}
