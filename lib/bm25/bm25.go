// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package bm25

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Okapi BM25 parameters.
const (
	paramK1      = 1.2
	paramB       = 0.75
	paramEpsilon = 0.25
)

// minTokenRunes drops single-rune tokens ("a", "I", stray digits).
const minTokenRunes = 2

// Field is a weighted text field. A document's token stream repeats
// each field's tokens Weight times; a Weight of 0 or less skips the
// field entirely.
type Field struct {
	Text   string
	Weight int
}

// Document is one searchable unit. Key identifies it in results and is
// not scored unless also supplied as a Field.
type Document struct {
	Key    string
	Fields []Field
}

// Result is one search hit.
type Result struct {
	Key string

	// Position is the document's index in the slice passed to New.
	Position int

	// Score is unbounded; higher is more relevant. Scores are only
	// comparable within one index.
	Score float64
}

// Index is an immutable BM25 index. It is safe for concurrent use.
type Index struct {
	documents   []Document
	frequencies []map[string]int
	lengths     []int
	average     float64
	idf         map[string]float64
}

// New builds an index over documents in one pass over their tokens.
func New(documents []Document) *Index {
	index := &Index{
		documents:   documents,
		frequencies: make([]map[string]int, len(documents)),
		lengths:     make([]int, len(documents)),
		idf:         make(map[string]float64),
	}

	containing := make(map[string]int)
	var total int
	for position, document := range documents {
		frequency := make(map[string]int)
		for _, field := range document.Fields {
			if field.Weight <= 0 {
				continue
			}
			for _, token := range Tokenize(field.Text) {
				if frequency[token] == 0 {
					containing[token]++
				}
				frequency[token] += field.Weight
				index.lengths[position] += field.Weight
			}
		}
		index.frequencies[position] = frequency
		total += index.lengths[position]
	}
	if len(documents) > 0 {
		index.average = float64(total) / float64(len(documents))
	}

	// A term present in more than half the corpus would get a
	// negative IDF; it is floored at epsilon so it still counts.
	count := float64(len(documents))
	for term, documentCount := range containing {
		idf := math.Log(1 + (count-float64(documentCount)+0.5)/(float64(documentCount)+0.5))
		if idf < 0 {
			idf = paramEpsilon
		}
		index.idf[term] = idf
	}
	return index
}

// Len returns the number of indexed documents.
func (index *Index) Len() int { return len(index.documents) }

// Search returns up to limit documents ranked by relevance to query.
// A limit of 0 or less returns every match. Equal scores keep corpus
// order so results are deterministic.
func (index *Index) Search(query string, limit int) []Result {
	terms := uniqueTerms(Tokenize(query))
	if len(terms) == 0 || index.average == 0 {
		return nil
	}

	var results []Result
	for position := range index.documents {
		if score := index.score(position, terms); score > 0 {
			results = append(results, Result{Key: index.documents[position].Key, Position: position, Score: score})
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (index *Index) score(position int, terms []string) float64 {
	frequencies := index.frequencies[position]
	normalizedLength := float64(index.lengths[position]) / index.average

	var score float64
	for _, term := range terms {
		frequency := float64(frequencies[term])
		if frequency == 0 {
			continue
		}
		numerator := frequency * (paramK1 + 1)
		denominator := frequency + paramK1*(1-paramB+paramB*normalizedLength)
		score += index.idf[term] * numerator / denominator
	}
	return score
}

func uniqueTerms(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	unique := tokens[:0]
	for _, token := range tokens {
		if !seen[token] {
			seen[token] = true
			unique = append(unique, token)
		}
	}
	return unique
}

// Tokenize splits text into lower-case runs of letters and digits in
// any script, dropping runs shorter than two runes.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTokenRunes {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// Snippet returns a window of about width runes from text centred on
// the first occurrence of any query term, with "…" marking elided
// ends. Text without a match yields its leading window. Whitespace
// runs are collapsed to single spaces.
func Snippet(text, query string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return ""
	}
	terms := make(map[string]bool)
	for _, term := range Tokenize(query) {
		terms[term] = true
	}

	anchor := 0
	for position, word := range words {
		if matchesAny(word, terms) {
			anchor = position
			break
		}
	}

	// Grow the window outward from the anchor until it is full.
	start, end := anchor, anchor+1
	length := utf8.RuneCountInString(words[anchor])
	for length < width && (start > 0 || end < len(words)) {
		if end < len(words) {
			length += 1 + utf8.RuneCountInString(words[end])
			end++
		}
		if start > 0 && length < width {
			start--
			length += 1 + utf8.RuneCountInString(words[start])
		}
	}

	elidedTail := end < len(words)
	snippet := strings.Join(words[start:end], " ")
	if runes := []rune(snippet); len(runes) > width {
		snippet = strings.TrimSpace(string(runes[:width]))
		elidedTail = true
	}
	if start > 0 {
		snippet = "…" + snippet
	}
	if elidedTail {
		snippet += "…"
	}
	return snippet
}

func matchesAny(word string, terms map[string]bool) bool {
	for _, token := range Tokenize(word) {
		if terms[token] {
			return true
		}
	}
	return false
}
