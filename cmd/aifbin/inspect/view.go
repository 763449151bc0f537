// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"fmt"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
	"github.com/aifbin/aifbin/lib/ingest"
	"github.com/aifbin/aifbin/lib/report"
)

// documentView is the JSON and CBOR rendering of a decoded container.
// Field names are stable for scripts.
type documentView struct {
	Name              string         `json:"name"`
	Version           uint32         `json:"version"`
	Length            int            `json:"length"`
	TotalSize         uint64         `json:"total_size"`
	Sections          []sectionView  `json:"sections"`
	Metadata          *codec.Value   `json:"metadata,omitempty"`
	MetadataError     string         `json:"metadata_error,omitempty"`
	OriginalRaw       *payloadView   `json:"original_raw,omitempty"`
	Chunks            []chunkView    `json:"chunks"`
	DeclaredChunks    uint32         `json:"declared_chunks"`
	Revisions         []revisionView `json:"revisions"`
	DeclaredRevisions uint32         `json:"declared_revisions"`
	Footer            *footerView    `json:"footer,omitempty"`
}

type sectionView struct {
	Section string `json:"section"`
	State   string `json:"state"`

	// Offset is omitted for absent sections, whose header field holds
	// the sentinel.
	Offset *uint64 `json:"offset,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// payloadView carries a byte payload as text when it is readable as
// text, otherwise as bytes (base64 in JSON) when binary output is
// enabled.
type payloadView struct {
	Length int    `json:"length"`
	Text   string `json:"text,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

type chunkView struct {
	ID            int          `json:"id"`
	Type          string       `json:"type"`
	TypeCode      uint32       `json:"type_code"`
	Offset        uint64       `json:"offset"`
	Label         string       `json:"label,omitempty"`
	Metadata      *codec.Value `json:"metadata,omitempty"`
	MetadataError string       `json:"metadata_error,omitempty"`
	Payload       payloadView  `json:"payload"`
}

type revisionView struct {
	Description string       `json:"description"`
	Timestamp   uint64       `json:"timestamp"`
	Time        string       `json:"time"`
	Delta       *codec.Value `json:"delta,omitempty"`
	DeltaError  string       `json:"delta_error,omitempty"`
}

type footerView struct {
	Index         []indexView `json:"index"`
	DeclaredIndex uint32      `json:"declared_index"`
	Checksum      string      `json:"checksum,omitempty"`
}

type indexView struct {
	ChunkID uint32 `json:"chunk_id"`
	Offset  uint64 `json:"offset"`
}

// viewOptions selects what newDocumentView includes.
type viewOptions struct {
	// Binary includes payloads that do not read as text.
	Binary bool
}

func newDocumentView(name string, document *aifbin.Document, options viewOptions) documentView {
	view := documentView{
		Name:              name,
		Version:           document.Header.Version,
		Length:            len(document.Source),
		TotalSize:         document.Header.TotalSize,
		Chunks:            []chunkView{},
		DeclaredChunks:    document.DeclaredChunks,
		Revisions:         []revisionView{},
		DeclaredRevisions: document.DeclaredRevisions,
	}

	for _, status := range document.Sections {
		section := sectionView{Section: status.Section.String(), State: status.State.String()}
		if status.State != aifbin.SectionAbsent {
			offset := status.Offset
			section.Offset = &offset
		}
		if status.Err != nil {
			section.Error = status.Err.Error()
		}
		view.Sections = append(view.Sections, section)
	}

	if document.Status(aifbin.SectionMetadata).Usable() {
		view.Metadata, view.MetadataError = mapResultView(document.Metadata)
	}
	if document.RawPresent {
		raw := newPayloadView(document.OriginalRaw, options)
		view.OriginalRaw = &raw
	}

	for _, chunk := range document.Chunks {
		chunkEntry := chunkView{
			ID:       chunk.ID,
			Type:     chunk.Type.String(),
			TypeCode: uint32(chunk.Type),
			Offset:   chunk.Span.Start,
			Label:    chunk.Label(),
			Payload:  newPayloadView(chunk.Data, options),
		}
		chunkEntry.Metadata, chunkEntry.MetadataError = mapResultView(chunk.Metadata)
		view.Chunks = append(view.Chunks, chunkEntry)
	}

	for _, revision := range document.Revisions {
		revisionEntry := revisionView{
			Description: revision.Description,
			Timestamp:   revision.Timestamp,
			Time:        report.FormatTimestamp(revision.Timestamp),
		}
		revisionEntry.Delta, revisionEntry.DeltaError = mapResultView(revision.Delta)
		view.Revisions = append(view.Revisions, revisionEntry)
	}

	if document.Status(aifbin.SectionFooter).Usable() {
		footer := &footerView{
			Index:         []indexView{},
			DeclaredIndex: document.Footer.DeclaredIndex,
		}
		for _, entry := range document.Footer.Index {
			footer.Index = append(footer.Index, indexView{ChunkID: entry.ChunkID, Offset: entry.Offset})
		}
		if document.Footer.ChecksumPresent {
			footer.Checksum = fmt.Sprintf("0x%016x", document.Footer.Checksum)
		}
		view.Footer = footer
	}

	return view
}

func mapResultView(result codec.MapResult) (*codec.Value, string) {
	if result.Err != nil {
		return nil, result.Err.Error()
	}
	value := result.Value
	return &value, ""
}

func newPayloadView(data []byte, options viewOptions) payloadView {
	payload := payloadView{Length: len(data)}
	switch {
	case !ingest.IsBinary(data):
		payload.Text = string(data)
	case options.Binary:
		payload.Data = data
	}
	return payload
}
