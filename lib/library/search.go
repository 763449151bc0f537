// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/bm25"
)

// Field weights for search. A match in the document title counts
// three times a match in chunk text.
const (
	titleWeight = 3
	labelWeight = 2
	textWeight  = 1
)

// snippetWidth is the approximate length of Hit.Snippet in runes.
const snippetWidth = 160

// Hit is one ranked search result: a chunk inside a library entry.
type Hit struct {
	Name    string  `json:"name"`
	ChunkID int     `json:"chunk_id"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

type searchTarget struct {
	name    string
	chunkID int
	text    string
}

// Search ranks every text-bearing chunk in the library against query
// and returns at most limit hits, best first. limit zero or less
// returns every match. Entries that fail to decode are skipped.
func (library *Library) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	loadedEntries, err := library.loadAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	var documents []bm25.Document
	var targets []searchTarget
	for _, item := range loadedEntries {
		if item.document == nil {
			continue
		}
		title := item.document.Title()
		for _, chunk := range item.document.Chunks {
			if !searchable(chunk) {
				continue
			}
			text := string(chunk.Data)
			documents = append(documents, bm25.Document{
				Key: item.entry.Name + "#" + strconv.Itoa(chunk.ID),
				Fields: []bm25.Field{
					{Text: title, Weight: titleWeight},
					{Text: chunk.Label(), Weight: labelWeight},
					{Text: text, Weight: textWeight},
				},
			})
			targets = append(targets, searchTarget{name: item.entry.Name, chunkID: chunk.ID, text: text})
		}
	}

	index := bm25.New(documents)
	results := index.Search(query, limit)
	hits := make([]Hit, 0, len(results))
	for _, result := range results {
		target := targets[result.Position]
		hits = append(hits, Hit{
			Name:    target.name,
			ChunkID: target.chunkID,
			Score:   result.Score,
			Snippet: bm25.Snippet(target.text, query, snippetWidth),
		})
	}
	library.logger.Debug("library search", "query", query, "chunks", index.Len(), "hits", len(hits))
	return hits, nil
}

// searchable reports whether a chunk carries text worth indexing.
func searchable(chunk aifbin.Chunk) bool {
	switch chunk.Type {
	case aifbin.ChunkText, aifbin.ChunkCode, aifbin.ChunkTableJSON:
		return utf8.Valid(chunk.Data)
	}
	return false
}
