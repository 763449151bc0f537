// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/binhash"
)

// Checksum states reported in a Summary.
const (
	ChecksumOK       = "ok"
	ChecksumMissing  = "missing"
	ChecksumMismatch = "mismatch"
)

// Summary is the scan result for one entry.
type Summary struct {
	Entry

	Digest         binhash.Digest `json:"-"`
	Ref            string         `json:"ref"`
	Title          string         `json:"title,omitempty"`
	Chunks         int            `json:"chunks"`
	DeclaredChunks uint32         `json:"declared_chunks"`
	Revisions      int            `json:"revisions"`
	Checksum       string         `json:"checksum,omitempty"`
	Warnings       int            `json:"warnings"`

	// Err is set when the file could not be read or is not an
	// AIF-BIN container. The other decode fields are then zero.
	Err error `json:"-"`

	// Error mirrors Err for JSON output.
	Error string `json:"error,omitempty"`
}

// loaded is one entry read and decoded by the scan workers.
type loaded struct {
	entry    Entry
	data     []byte
	document *aifbin.Document
	err      error
}

// Scan decodes every entry and summarizes it. Files that fail to
// decode produce a Summary with Err set; they do not fail the scan.
// concurrency bounds the number of files decoded at once, zero or
// less meaning GOMAXPROCS. Results are in List order.
func (library *Library) Scan(ctx context.Context, concurrency int) ([]Summary, error) {
	loadedEntries, err := library.loadAll(ctx, concurrency)
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, len(loadedEntries))
	for index, item := range loadedEntries {
		summaries[index] = summarize(item)
	}
	return summaries, nil
}

func summarize(item loaded) Summary {
	summary := Summary{Entry: item.entry}
	if item.data != nil {
		summary.Digest = binhash.HashBytes(item.data)
		summary.Ref = binhash.ShortRef(summary.Digest)
	}
	if item.err != nil {
		summary.Err = item.err
		summary.Error = item.err.Error()
		return summary
	}

	document := item.document
	report := aifbin.Verify(document)
	summary.Title = document.Title()
	summary.Chunks = len(document.Chunks)
	summary.DeclaredChunks = document.DeclaredChunks
	summary.Revisions = len(document.Revisions)
	summary.Warnings = len(report.Warnings())
	switch {
	case report.Has(aifbin.FindingChecksumMismatch):
		summary.Checksum = ChecksumMismatch
	case report.Has(aifbin.FindingChecksumOK):
		summary.Checksum = ChecksumOK
	default:
		summary.Checksum = ChecksumMissing
	}
	return summary
}

// loadAll reads and decodes every listed entry with at most
// concurrency files in flight. Only cancellation or a failure to list
// the directory is returned as an error.
func (library *Library) loadAll(ctx context.Context, concurrency int) ([]loaded, error) {
	entries, err := library.List()
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]loaded, len(entries))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for index, entry := range entries {
		index, entry := index, entry
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[index] = library.load(entry)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("scanning library: %w", err)
	}
	return results, nil
}

func (library *Library) load(entry Entry) loaded {
	item := loaded{entry: entry}
	data, err := os.ReadFile(filepath.Join(library.root, entry.Name))
	if err != nil {
		item.err = fmt.Errorf("reading %s: %w", entry.Name, err)
		library.logger.Warn("library entry unreadable", "name", entry.Name, "error", err)
		return item
	}
	item.data = data
	document, err := aifbin.Decode(data)
	if err != nil {
		item.err = err
		library.logger.Warn("library entry is not an AIF-BIN container", "name", entry.Name, "error", err)
		return item
	}
	item.document = document
	return item
}

// Resolve maps ref to an entry name. ref is either an entry name
// (the extension may be omitted) or a content reference such as
// "aif-3f2a9c". A content reference matching more than one entry is
// an error.
func (library *Library) Resolve(ctx context.Context, ref string) (string, error) {
	name := NormalizeName(ref)
	if ValidateName(name) == nil {
		if _, err := os.Lstat(filepath.Join(library.root, name)); err == nil {
			return name, nil
		}
	}

	summaries, err := library.Scan(ctx, 0)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, summary := range summaries {
		if summary.Ref != "" && binhash.MatchesShortRef(summary.Digest, ref) {
			matches = append(matches, summary.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("reference %q is ambiguous: matches %v", ref, matches)
	}
}
