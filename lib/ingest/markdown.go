// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
)

// The goldmark parser is configured once and shared; Parse keeps its
// state per call.
var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// defaultSectionLabel names text that appears before the first
// heading.
const defaultSectionLabel = "Main Content"

// markdownSplitter walks the top-level blocks of one document and
// cuts them into chunks. Prose between split points is emitted as one
// Text chunk covering the original source lines.
type markdownSplitter struct {
	source     []byte
	splitLevel int

	label string
	title string

	// Source range of prose pending in the current section.
	start, stop int
	pending     bool

	chunks []aifbin.ChunkInput
}

// convertMarkdown splits source into Text, Code, and TableJSON chunks
// and returns the text of the first H1 heading, if any.
func convertMarkdown(source []byte, splitLevel int) ([]aifbin.ChunkInput, string, error) {
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))
	splitter := &markdownSplitter{
		source:     source,
		splitLevel: splitLevel,
		label:      defaultSectionLabel,
	}
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		if err := splitter.block(node); err != nil {
			return nil, "", err
		}
	}
	splitter.flush()
	return splitter.chunks, splitter.title, nil
}

func (splitter *markdownSplitter) block(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Heading:
		heading := strings.TrimSpace(plainText(node, splitter.source))
		if node.Level == 1 && splitter.title == "" {
			splitter.title = heading
		}
		if node.Level <= splitter.splitLevel {
			splitter.flush()
			if heading != "" {
				splitter.label = heading
			}
			return nil
		}
	case *ast.FencedCodeBlock:
		splitter.flush()
		splitter.code(node, string(node.Language(splitter.source)))
		return nil
	case *ast.CodeBlock:
		splitter.flush()
		splitter.code(node, "")
		return nil
	case *extast.Table:
		splitter.flush()
		return splitter.table(node)
	}

	start, stop, ok := sourceSpan(node)
	if !ok {
		return nil
	}
	start = lineStart(splitter.source, start)
	if !splitter.pending {
		splitter.start = start
		splitter.pending = true
	}
	splitter.stop = max(splitter.stop, stop)
	return nil
}

// flush emits the pending prose, if it has any non-blank text.
func (splitter *markdownSplitter) flush() {
	if !splitter.pending {
		return
	}
	splitter.pending = false
	body := bytes.TrimRight(splitter.source[splitter.start:splitter.stop], " \t\r\n")
	body = bytes.TrimLeft(body, "\r\n")
	if len(bytes.TrimSpace(body)) == 0 {
		return
	}
	splitter.chunks = append(splitter.chunks, textChunk(splitter.label, body))
}

func (splitter *markdownSplitter) code(node ast.Node, language string) {
	var body bytes.Buffer
	lines := node.Lines()
	for index, n := 0, lines.Len(); index < n; index++ {
		segment := lines.At(index)
		body.Write(segment.Value(splitter.source))
	}
	var extra []codec.Entry
	if language != "" {
		extra = append(extra, codec.Field("language", codec.String(language)))
	}
	splitter.chunks = append(splitter.chunks, aifbin.ChunkInput{
		Type:     aifbin.ChunkCode,
		Metadata: chunkMetadata(splitter.label, "code", extra...),
		Data:     body.Bytes(),
	})
}

// table emits a GFM table as a JSON array with one object per body
// row, keyed by the header cells in column order.
func (splitter *markdownSplitter) table(node *extast.Table) error {
	var columns []string
	var rows []codec.Value
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		cells := tableCells(child, splitter.source)
		switch child.(type) {
		case *extast.TableHeader:
			columns = make([]string, len(cells))
			for index, cell := range cells {
				if cell == "" {
					cell = fmt.Sprintf("column %d", index+1)
				}
				columns[index] = cell
			}
		case *extast.TableRow:
			entries := make([]codec.Entry, len(columns))
			for index, column := range columns {
				var cell string
				if index < len(cells) {
					cell = cells[index]
				}
				entries[index] = codec.Field(column, codec.String(cell))
			}
			rows = append(rows, codec.Map(entries...))
		}
	}

	data, err := json.Marshal(codec.Array(rows...))
	if err != nil {
		return fmt.Errorf("encoding table %q: %w", splitter.label, err)
	}
	splitter.chunks = append(splitter.chunks, aifbin.ChunkInput{
		Type: aifbin.ChunkTableJSON,
		Metadata: chunkMetadata(splitter.label, "table",
			codec.Field("columns", codec.Strings(columns...)),
			codec.Field("rows", codec.Int(int64(len(rows)))),
		),
		Data: data,
	})
	return nil
}

func tableCells(row ast.Node, source []byte) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(plainText(cell, source)))
	}
	return cells
}

// plainText concatenates the inline text under node, rendering soft
// line breaks as spaces.
func plainText(node ast.Node, source []byte) string {
	var builder strings.Builder
	ast.Walk(node, func(current ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch current := current.(type) {
		case *ast.Text:
			builder.Write(current.Segment.Value(source))
			if current.SoftLineBreak() || current.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(current.Value)
		case *ast.AutoLink:
			builder.Write(current.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return builder.String()
}

// sourceSpan returns the byte range covered by the lines of node and
// its block descendants. Only block nodes carry lines.
func sourceSpan(node ast.Node) (start, stop int, ok bool) {
	ast.Walk(node, func(current ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || current.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := current.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		first, last := lines.At(0), lines.At(lines.Len()-1)
		if !ok || first.Start < start {
			start = first.Start
		}
		if !ok || last.Stop > stop {
			stop = last.Stop
		}
		ok = true
		return ast.WalkContinue, nil
	})
	return start, stop, ok
}

// lineStart moves offset back to the beginning of its line so block
// markers ("- ", "> ", "### ") stay with the text.
func lineStart(source []byte, offset int) int {
	return bytes.LastIndexByte(source[:offset], '\n') + 1
}
