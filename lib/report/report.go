// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
)

// Defaults for zero-valued Options fields.
const (
	DefaultHexBytes = 50
	DefaultWidth    = 100

	summaryLength = 100
	labelLength   = 30
	codeLines     = 20
)

// secondsCutoff separates second and millisecond revision
// timestamps: 2^34 seconds is past the year 2500.
const secondsCutoff = 1 << 34

// Options controls Render.
type Options struct {
	// Name is the file name shown in the banner.
	Name string

	// Verbose adds a hex snippet under every chunk and a source
	// preview under Code chunks.
	Verbose bool

	// Color enables ANSI styling and syntax highlighting. Plain
	// output contains no escape sequences.
	Color bool

	// HexBytes is the length of the verbose hex snippet.
	HexBytes int

	// Width caps the length of free-text lines (summary, labels,
	// code preview).
	Width int
}

func (options Options) hexBytes() int {
	if options.HexBytes <= 0 {
		return DefaultHexBytes
	}
	return options.HexBytes
}

func (options Options) width() int {
	if options.Width <= 0 {
		return DefaultWidth
	}
	return options.Width
}

// palette holds the report styles. When disabled every style renders
// its input unchanged.
type palette struct {
	enabled bool

	title   lipgloss.Style
	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	warning lipgloss.Style
	faint   lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		return palette{}
	}
	// The profile is forced rather than detected: callers decide
	// whether w is a terminal.
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)
	return palette{
		enabled: true,
		title:   renderer.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		heading: renderer.NewStyle().Foreground(lipgloss.Color("4")).Bold(true),
		good:    renderer.NewStyle().Foreground(lipgloss.Color("2")),
		bad:     renderer.NewStyle().Foreground(lipgloss.Color("1")),
		warning: renderer.NewStyle().Foreground(lipgloss.Color("3")),
		faint:   renderer.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p palette) render(style lipgloss.Style, text string) string {
	if !p.enabled {
		return text
	}
	return style.Render(text)
}

type reportWriter struct {
	builder  strings.Builder
	palette  palette
	options  Options
	document *aifbin.Document
}

func (r *reportWriter) line(format string, args ...any) {
	fmt.Fprintf(&r.builder, format, args...)
	r.builder.WriteByte('\n')
}

func (r *reportWriter) heading(text string) {
	r.builder.WriteByte('\n')
	r.line("%s", r.palette.render(r.palette.heading, "--- "+text+" ---"))
}

// Render writes a forensic report of document to w: every header
// offset with its status, the metadata highlights, each chunk, the
// revision log, the footer, and the verification findings.
func Render(w io.Writer, document *aifbin.Document, options Options) error {
	r := &reportWriter{
		palette:  newPalette(w, options.Color),
		options:  options,
		document: document,
	}
	r.banner()
	r.header()
	r.metadata()
	r.originalRaw()
	r.chunks()
	r.revisions()
	r.footer()
	r.builder.WriteByte('\n')
	r.line("%s", r.palette.render(r.palette.good, "Analysis Complete."))

	_, err := io.WriteString(w, r.builder.String())
	return err
}

func (r *reportWriter) banner() {
	header := r.document.Header
	r.line("%s", r.palette.render(r.palette.title, "=== AIF-BIN Forensic Report ==="))
	if r.options.Name != "" {
		r.line("File: %s", r.options.Name)
	}
	r.line("Size: %d bytes", len(r.document.Source))
	r.line("%s", r.palette.render(r.palette.good, fmt.Sprintf("Valid AIF-BIN v%d detected.", header.Version)))
}

// OffsetLabel is the bracketed status shown next to a header offset.
func OffsetLabel(state aifbin.SectionState) string {
	switch state {
	case aifbin.SectionPresent:
		return "VALID"
	case aifbin.SectionAbsent:
		return "ABSENT"
	case aifbin.SectionOutOfRange:
		return "INVALID (OOB)"
	case aifbin.SectionTruncated:
		return "TRUNCATED"
	default:
		return strings.ToUpper(state.String())
	}
}

func (r *reportWriter) header() {
	r.heading("Header Breakdown")
	for _, status := range r.document.Sections {
		label := OffsetLabel(status.State)
		style := r.palette.good
		switch status.State {
		case aifbin.SectionAbsent:
			style = r.palette.faint
		case aifbin.SectionOutOfRange:
			style = r.palette.bad
		case aifbin.SectionTruncated:
			style = r.palette.warning
		}
		r.line("  %-10s Offset: 0x%08X [%s]", capitalize(status.Section.String()), status.Offset, r.palette.render(style, label))
	}

	totalSize := r.document.Header.TotalSize
	if totalSize == uint64(len(r.document.Source)) {
		r.line("  Total Size: %d bytes (matches file)", totalSize)
	} else {
		r.line("  Total Size: %d bytes %s", totalSize,
			r.palette.render(r.palette.warning, fmt.Sprintf("(file is %d bytes)", len(r.document.Source))))
	}
}

func (r *reportWriter) metadata() {
	r.heading("Metadata Section")
	status := r.document.Status(aifbin.SectionMetadata)
	if !status.Usable() {
		r.line("  %s", OffsetLabel(status.State))
		return
	}
	result := r.document.Metadata
	if result.Err != nil {
		r.line("  %s", r.palette.render(r.palette.bad, "Unreadable: "+result.Err.Reason))
		return
	}
	metadata := result.Value
	r.line("  Title:   %s", textOr(metadata.GetString("title"), "N/A"))

	summary := "N/A"
	if value, ok := metadata.Get("summary"); ok {
		summary = displayText(value)
	}
	r.line("  Summary: %s", r.truncate(summary, summaryLength))

	var tags []string
	if value, ok := metadata.Get("tags"); ok {
		for _, item := range value.Items() {
			tags = append(tags, displayText(item))
		}
	}
	r.line("  Tags:    %s", strings.Join(tags, ", "))

	if embedding, ok := metadata.Get("global_embedding"); ok {
		r.line("  Global Embedding: %d-dim vector", embedding.Len())
	}
}

func (r *reportWriter) originalRaw() {
	r.heading("Original Raw Section")
	status := r.document.Status(aifbin.SectionOriginalRaw)
	switch {
	case r.document.RawPresent:
		r.line("  Size: %d bytes", len(r.document.OriginalRaw))
	default:
		r.line("  %s", OffsetLabel(status.State))
	}
}

func (r *reportWriter) chunks() {
	r.heading("Content Chunks")
	status := r.document.Status(aifbin.SectionChunks)
	if !status.Usable() {
		r.line("  %s", OffsetLabel(status.State))
		return
	}
	count := fmt.Sprintf("  Count: %d", len(r.document.Chunks))
	if uint32(len(r.document.Chunks)) != r.document.DeclaredChunks {
		count += r.palette.render(r.palette.warning, fmt.Sprintf(" (declared %d)", r.document.DeclaredChunks))
	}
	r.line("%s", count)

	for _, chunk := range r.document.Chunks {
		label := textOr(chunk.Label(), "No caption")
		if chunk.Metadata.Err != nil {
			label = r.palette.render(r.palette.bad, "unreadable metadata")
		} else {
			label = ansi.Truncate(label, labelLength, "…")
		}
		r.line("  [%d] Type: %-10s | Data: %8d bytes | Meta: %s", chunk.ID, chunk.Type, len(chunk.Data), label)
		if !r.options.Verbose {
			continue
		}
		r.snippet(chunk.Data)
		if chunk.Type == aifbin.ChunkCode {
			r.code(chunk)
		}
	}
}

func (r *reportWriter) snippet(data []byte) {
	limit := min(len(data), r.options.hexBytes())
	suffix := ""
	if limit < len(data) {
		suffix = "..."
	}
	r.line("      Snippet: %s%s", r.palette.render(r.palette.faint, hex.EncodeToString(data[:limit])), suffix)
}

// code prints the first lines of a Code chunk, highlighted when color
// is enabled.
func (r *reportWriter) code(chunk aifbin.Chunk) {
	lines := strings.Split(strings.TrimRight(string(chunk.Data), "\n"), "\n")
	hidden := 0
	if len(lines) > codeLines {
		hidden = len(lines) - codeLines
		lines = lines[:codeLines]
	}
	for index, line := range lines {
		lines[index] = ansi.Truncate(line, r.options.width(), "…")
	}
	source := strings.Join(lines, "\n")

	if r.palette.enabled {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, source+"\n", chunk.Metadata.Value.GetString("language"), "terminal256", "monokai"); err == nil {
			source = strings.TrimRight(highlighted.String(), "\n")
		}
	}
	for _, line := range strings.Split(source, "\n") {
		r.line("      | %s", line)
	}
	if hidden > 0 {
		r.line("      | %s", r.palette.render(r.palette.faint, fmt.Sprintf("... %d more lines", hidden)))
	}
}

func (r *reportWriter) revisions() {
	r.heading("Revisions")
	status := r.document.Status(aifbin.SectionRevisions)
	if !status.Usable() {
		r.line("  %s", OffsetLabel(status.State))
		return
	}
	count := fmt.Sprintf("  Count: %d", len(r.document.Revisions))
	if uint32(len(r.document.Revisions)) != r.document.DeclaredRevisions {
		count += r.palette.render(r.palette.warning, fmt.Sprintf(" (declared %d)", r.document.DeclaredRevisions))
	}
	r.line("%s", count)
	for index, revision := range r.document.Revisions {
		description := ansi.Truncate(revision.Description, r.options.width(), "…")
		r.line("  [%d] %s  %s", index, FormatTimestamp(revision.Timestamp), description)
	}
}

// FormatTimestamp renders a revision timestamp as RFC 3339 UTC,
// treating values past 2^34 as milliseconds.
func FormatTimestamp(timestamp uint64) string {
	switch {
	case timestamp < secondsCutoff:
		return time.Unix(int64(timestamp), 0).UTC().Format(time.RFC3339)
	case timestamp < secondsCutoff*1000:
		return time.UnixMilli(int64(timestamp)).UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%d", timestamp)
	}
}

func (r *reportWriter) footer() {
	r.heading("Footer & Integrity")
	status := r.document.Status(aifbin.SectionFooter)
	if status.Usable() {
		footer := r.document.Footer
		r.line("  Index Entries: %d", footer.DeclaredIndex)
		if footer.ChecksumPresent {
			r.line("  Checksum: 0x%016X", footer.Checksum)
		} else {
			r.line("  Checksum: %s", r.palette.render(r.palette.warning, "missing"))
		}
	} else {
		r.line("  %s", OffsetLabel(status.State))
	}

	verification := aifbin.Verify(r.document)
	for _, finding := range verification.Findings {
		style := r.palette.faint
		if finding.Severity == aifbin.SeverityWarning {
			style = r.palette.warning
		}
		r.line("  %s %s: %s", r.palette.render(style, "["+finding.Severity.String()+"]"), finding.Code, finding.Message)
	}
	if verification.OK() {
		r.line("  Integrity: %s", r.palette.render(r.palette.good, "OK"))
	} else {
		r.line("  Integrity: %s", r.palette.render(r.palette.bad, fmt.Sprintf("%d warnings", len(verification.Warnings()))))
	}
}

func (r *reportWriter) truncate(text string, length int) string {
	if ansi.StringWidth(text) <= length {
		return text
	}
	return ansi.Truncate(text, length, "") + "..."
}

// displayText renders a metadata value for one line of the report.
func displayText(value codec.Value) string {
	if text, ok := value.AsString(); ok {
		return text
	}
	encoded, err := value.MarshalJSON()
	if err != nil {
		return value.Kind().String()
	}
	return string(encoded)
}

func textOr(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
