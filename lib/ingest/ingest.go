// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
)

// FormatVersion is the metadata "version" written by Convert.
const FormatVersion = "2.0.0"

// maxDates caps the entities.dates list.
const maxDates = 10

// timestampLayout matches JavaScript's Date.toISOString, which the
// desktop tooling writes for "created" and "convertedAt".
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// Extraction methods recorded in metadata.
const (
	MethodText     = "text"
	MethodMarkdown = "markdown"
	MethodNone     = "none"
)

// Options controls Convert. The zero value is usable.
type Options struct {
	// Now supplies the conversion time. Defaults to time.Now.
	Now func() time.Time

	// ID is written as the document "id". A random UUID is generated
	// when empty.
	ID string

	// Title overrides the derived title (first H1 for Markdown, the
	// file name otherwise).
	Title string

	Tags []string

	// SplitLevel is the deepest Markdown heading level that starts a
	// new section. Headings below it stay inside the current section.
	// Zero means DefaultSplitLevel.
	SplitLevel int

	// MIMEType overrides extension-based detection.
	MIMEType string
}

// DefaultSplitLevel splits Markdown at H1 and H2.
const DefaultSplitLevel = 2

func (options Options) now() time.Time {
	if options.Now != nil {
		return options.Now()
	}
	return time.Now()
}

func (options Options) splitLevel() int {
	if options.SplitLevel <= 0 {
		return DefaultSplitLevel
	}
	return min(options.SplitLevel, 6)
}

// Convert turns a source file into container input. name is the
// file's base name and selects the converter by extension; content
// is the full file. The original bytes always become the raw
// section, so the source can be recovered from the container.
func Convert(name string, content []byte, options Options) (aifbin.DocumentInput, error) {
	base := filepath.Base(name)
	mimeType := options.MIMEType
	if mimeType == "" {
		mimeType = DetectMIMEType(base, content)
	}

	var (
		chunks  []aifbin.ChunkInput
		method  string
		text    string
		heading string
		err     error
	)
	switch {
	case IsBinary(content):
		method = MethodNone
		chunks = []aifbin.ChunkInput{noticeChunk(base, mimeType, content)}
	case isMarkdown(base):
		method = MethodMarkdown
		text = string(content)
		chunks, heading, err = convertMarkdown(content, options.splitLevel())
		if err != nil {
			return aifbin.DocumentInput{}, err
		}
	default:
		method = MethodText
		text = string(content)
		if len(content) > 0 {
			chunks = []aifbin.ChunkInput{textChunk("Main Content", content)}
		}
	}

	title := options.Title
	if title == "" {
		title = heading
	}
	if title == "" {
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	id := options.ID
	if id == "" {
		id = uuid.NewString()
	}

	timestamp := options.now().UTC().Format(timestampLayout)
	tags := options.Tags
	if tags == nil {
		tags = []string{}
	}

	metadata := codec.Map(
		codec.Field("version", codec.String(FormatVersion)),
		codec.Field("format", codec.String("aif-bin")),
		codec.Field("id", codec.String(id)),
		codec.Field("created", codec.String(timestamp)),
		codec.Field("source", codec.String(base)),
		codec.Field("originalName", codec.String(base)),
		codec.Field("originalSize", codec.Int(int64(len(content)))),
		codec.Field("mimeType", codec.String(mimeType)),
		codec.Field("convertedAt", codec.String(timestamp)),
		codec.Field("extractionMethod", codec.String(method)),
		codec.Field("title", codec.String(title)),
		codec.Field("tags", codec.Strings(tags...)),
		codec.Field("entities", codec.Map(
			codec.Field("dates", codec.Strings(ExtractDates(text)...)),
		)),
	)

	return aifbin.DocumentInput{
		Metadata:       metadata,
		OriginalRaw:    content,
		HasOriginalRaw: len(content) > 0,
		Chunks:         chunks,
	}, nil
}

// ExtractDates returns the first ten YYYY-MM-DD substrings of text in
// order of appearance. Duplicates are kept.
func ExtractDates(text string) []string {
	matches := datePattern.FindAllString(text, maxDates)
	if matches == nil {
		return []string{}
	}
	return matches
}

// IsBinary reports whether content cannot be treated as text: it
// contains NUL bytes, is not valid UTF-8, or is a PDF.
func IsBinary(content []byte) bool {
	return bytes.HasPrefix(content, []byte("%PDF")) ||
		bytes.IndexByte(content, 0) >= 0 ||
		!utf8.Valid(content)
}

var textTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".txt":      "text/plain",
	".text":     "text/plain",
	".csv":      "text/csv",
}

// DetectMIMEType guesses a MIME type from the file extension, falling
// back to text/plain for text content and application/octet-stream
// for anything else.
func DetectMIMEType(name string, content []byte) string {
	extension := strings.ToLower(filepath.Ext(name))
	if known, ok := textTypes[extension]; ok {
		return known
	}
	if bytes.HasPrefix(content, []byte("%PDF")) {
		return "application/pdf"
	}
	if detected := mime.TypeByExtension(extension); detected != "" {
		return detected
	}
	if !IsBinary(content) {
		return "text/plain"
	}
	return "application/octet-stream"
}

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func chunkMetadata(label, kind string, extra ...codec.Entry) codec.Value {
	entries := append([]codec.Entry{
		codec.Field("label", codec.String(label)),
		codec.Field("type", codec.String(kind)),
	}, extra...)
	return codec.Map(entries...)
}

func textChunk(label string, data []byte) aifbin.ChunkInput {
	return aifbin.ChunkInput{
		Type:     aifbin.ChunkText,
		Metadata: chunkMetadata(label, "text"),
		Data:     data,
	}
}

func noticeChunk(name, mimeType string, content []byte) aifbin.ChunkInput {
	kind := "a binary"
	switch {
	case bytes.HasPrefix(content, []byte("%PDF")) || mimeType == "application/pdf":
		kind = "a PDF"
	case strings.HasPrefix(mimeType, "image/"):
		kind = "an image"
	}
	message := "This is " + kind + " file (" + name + "). Text extraction is not available; the original bytes are kept in the raw section."
	return aifbin.ChunkInput{
		Type:     aifbin.ChunkText,
		Metadata: chunkMetadata("Notice", "info"),
		Data:     []byte(message),
	}
}
