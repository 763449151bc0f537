// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aifbin/aifbin/lib/codec"
)

// SectionState classifies the outcome of locating and parsing one
// section.
type SectionState uint8

const (
	// SectionPresent means the section was located and parsed in full.
	SectionPresent SectionState = iota

	// SectionAbsent means the header offset is AbsentOffset.
	SectionAbsent

	// SectionOutOfRange means the header offset points at or past the
	// end of the buffer.
	SectionOutOfRange

	// SectionTruncated means the section starts inside the buffer but
	// a length prefix, count, or record runs past its end. Whatever
	// was parsed before the cut is kept.
	SectionTruncated
)

func (s SectionState) String() string {
	switch s {
	case SectionPresent:
		return "present"
	case SectionAbsent:
		return "absent"
	case SectionOutOfRange:
		return "out-of-range"
	case SectionTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// SectionStatus records how one section fared during decode.
type SectionStatus struct {
	Section Section
	Offset  uint64
	State   SectionState

	// Err is an *OffsetError for SectionOutOfRange and a
	// *TruncatedError for SectionTruncated; nil otherwise.
	Err error
}

// Usable reports whether any content was read from the section.
func (s SectionStatus) Usable() bool {
	return s.State == SectionPresent || s.State == SectionTruncated
}

// Document is a decoded AIF-BIN container. It is immutable once
// returned by Decode.
type Document struct {
	Header Header

	// Metadata is the decoded document metadata. It is the zero
	// MapResult when the section is absent or unreadable; Sections
	// says which.
	Metadata    codec.MapResult
	RawMetadata []byte

	// OriginalRaw is the original document payload. RawPresent
	// distinguishes an absent section from a present empty one.
	OriginalRaw []byte
	RawPresent  bool

	Chunks         []Chunk
	DeclaredChunks uint32

	Revisions         []Revision
	DeclaredRevisions uint32

	Footer Footer

	// Sections holds one status per section in layout order (see
	// AllSections).
	Sections []SectionStatus

	// Source is the buffer the document was decoded from. Payload
	// slices in the document alias it.
	Source []byte
}

// Status returns the decode status of section.
func (d *Document) Status(section Section) SectionStatus {
	for _, status := range d.Sections {
		if status.Section == section {
			return status
		}
	}
	return SectionStatus{Section: section, Offset: AbsentOffset, State: SectionAbsent}
}

// Title returns the "title" metadata entry, or "".
func (d *Document) Title() string {
	return d.Metadata.Value.GetString("title")
}

// Decode parses buffer as an AIF-BIN container. The only error is a
// *MagicError; every section is then parsed independently, and
// problems inside one section are recorded in Document.Sections
// without affecting the others.
func Decode(buffer []byte) (*Document, error) {
	header, err := DecodeHeader(buffer)
	if err != nil {
		return nil, err
	}

	document := &Document{Header: header, Source: buffer}

	status := locate(buffer, SectionMetadata, header.MetadataOffset)
	if status.State == SectionPresent {
		payload, _, err := ReadBlob(buffer, status.Offset)
		if err != nil {
			status.State, status.Err = SectionTruncated, err
		} else {
			document.RawMetadata = payload
			document.Metadata = codec.DecodeMap(payload)
		}
	}
	document.Sections = append(document.Sections, status)

	status = locate(buffer, SectionOriginalRaw, header.OriginalRawOffset)
	if status.State == SectionPresent {
		payload, _, err := ReadBlob(buffer, status.Offset)
		if err != nil {
			status.State, status.Err = SectionTruncated, err
		} else {
			document.OriginalRaw = payload
			document.RawPresent = true
		}
	}
	document.Sections = append(document.Sections, status)

	status = locate(buffer, SectionChunks, header.ChunksOffset)
	if status.State == SectionPresent {
		reader, err := NewChunkReader(buffer, status.Offset)
		if err != nil {
			status.State, status.Err = SectionTruncated, err
		} else {
			document.DeclaredChunks = reader.Declared()
			for {
				chunk, ok := reader.Next()
				if !ok {
					break
				}
				document.Chunks = append(document.Chunks, chunk)
			}
			if reader.Err() != nil {
				status.State, status.Err = SectionTruncated, reader.Err()
			}
		}
	}
	document.Sections = append(document.Sections, status)

	status = locate(buffer, SectionRevisions, header.RevisionsOffset)
	if status.State == SectionPresent {
		reader, err := NewRevisionReader(buffer, status.Offset)
		if err != nil {
			status.State, status.Err = SectionTruncated, err
		} else {
			document.DeclaredRevisions = reader.Declared()
			for {
				revision, ok := reader.Next()
				if !ok {
					break
				}
				document.Revisions = append(document.Revisions, revision)
			}
			if reader.Err() != nil {
				status.State, status.Err = SectionTruncated, reader.Err()
			}
		}
	}
	document.Sections = append(document.Sections, status)

	status = locate(buffer, SectionFooter, header.FooterOffset)
	if status.State == SectionPresent {
		footer, err := DecodeFooter(buffer, status.Offset)
		switch {
		case err != nil:
			status.State, status.Err = SectionTruncated, err
		case len(footer.Index) < int(footer.DeclaredIndex):
			cursor := status.Offset + footerCountSize + uint64(len(footer.Index))*footerIndexEntrySize
			missing := uint64(footer.DeclaredIndex) - uint64(len(footer.Index))
			status.State = SectionTruncated
			status.Err = &TruncatedError{What: "footer index", Offset: cursor, Need: missing * footerIndexEntrySize, Have: remaining(buffer, cursor)}
		case !footer.ChecksumPresent:
			cursor := status.Offset + footerCountSize + uint64(len(footer.Index))*footerIndexEntrySize
			status.State = SectionTruncated
			status.Err = &TruncatedError{What: "footer checksum", Offset: cursor, Need: checksumSize, Have: remaining(buffer, cursor)}
		}
		document.Footer = footer
	}
	document.Sections = append(document.Sections, status)

	return document, nil
}

// locate applies the offset precedence shared by every section: the
// sentinel first, then the bounds check.
func locate(buffer []byte, section Section, offset uint64) SectionStatus {
	status := SectionStatus{Section: section, Offset: offset, State: SectionPresent}
	switch {
	case offset == AbsentOffset:
		status.State = SectionAbsent
	case offset >= uint64(len(buffer)):
		status.State = SectionOutOfRange
		status.Err = &OffsetError{Section: section, Offset: offset, Length: len(buffer)}
	}
	return status
}

// DecodeFile reads and decodes the file at path.
func DecodeFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	document, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return document, nil
}

// Clone returns a copy of d backed by its own buffer, so the caller
// may reuse or mutate the original source afterwards.
func (d *Document) Clone() *Document {
	clone, err := Decode(bytes.Clone(d.Source))
	if err != nil {
		// d was decoded from the same bytes, so the magic is valid.
		panic("aifbin: re-decoding a decoded document failed: " + err.Error())
	}
	return clone
}

// Input converts d back into an encoder input. Metadata, chunk
// metadata and revision deltas carry their original payload bytes, so
// Encode(d.Input()) reproduces every section's contents even where a
// payload failed to decode.
func (d *Document) Input() DocumentInput {
	input := DocumentInput{
		Version:        d.Header.Version,
		Metadata:       d.Metadata.Value,
		RawMetadata:    d.RawMetadata,
		OriginalRaw:    d.OriginalRaw,
		HasOriginalRaw: d.RawPresent,
		HasRevisions:   d.Status(SectionRevisions).Usable(),
	}
	for _, chunk := range d.Chunks {
		rawMetadata := chunk.RawMetadata
		if rawMetadata == nil {
			rawMetadata = []byte{}
		}
		input.Chunks = append(input.Chunks, ChunkInput{
			Type:        chunk.Type,
			Metadata:    chunk.Metadata.Value,
			RawMetadata: rawMetadata,
			Data:        chunk.Data,
		})
	}
	for _, revision := range d.Revisions {
		rawDelta := revision.RawDelta
		if rawDelta == nil {
			rawDelta = []byte{}
		}
		input.Revisions = append(input.Revisions, RevisionInput{
			Description: revision.Description,
			Delta:       revision.Delta.Value,
			RawDelta:    rawDelta,
			Timestamp:   revision.Timestamp,
		})
	}
	return input
}

// DocumentInput is the structured content Encode lays out.
type DocumentInput struct {
	// Version defaults to DefaultVersion when zero.
	Version uint32

	// Metadata is encoded as MessagePack unless RawMetadata is
	// non-nil, in which case those bytes are written verbatim.
	Metadata    codec.Value
	RawMetadata []byte

	// The original-raw section is written when HasOriginalRaw is set
	// or OriginalRaw is non-empty; otherwise its offset is
	// AbsentOffset.
	OriginalRaw    []byte
	HasOriginalRaw bool

	Chunks []ChunkInput

	// The revision log is written when HasRevisions is set or
	// Revisions is non-empty; otherwise its offset is AbsentOffset.
	Revisions    []RevisionInput
	HasRevisions bool
}

// Encoded is the output of Encode.
type Encoded struct {
	Bytes    []byte
	Checksum uint64
	Header   Header

	// ChunkOffsets holds the absolute record offset of each chunk.
	ChunkOffsets []uint64
}

type encodeConfig struct {
	footerIndex bool
}

// EncodeOption configures Encode.
type EncodeOption func(*encodeConfig)

// WithoutFooterIndex writes a footer with an empty chunk index.
func WithoutFooterIndex() EncodeOption {
	return func(config *encodeConfig) { config.footerIndex = false }
}

// WithFooterIndex sets whether the footer lists every chunk's record
// offset. The index is written by default.
func WithFooterIndex(enabled bool) EncodeOption {
	return func(config *encodeConfig) { config.footerIndex = enabled }
}

// Encode lays input out as a container: header, metadata, optional
// original raw, chunks, optional revisions, footer. Header.TotalSize
// always equals len(Bytes), and the footer checksum covers every byte
// before it.
func Encode(input DocumentInput, options ...EncodeOption) (*Encoded, error) {
	config := encodeConfig{footerIndex: true}
	for _, option := range options {
		option(&config)
	}

	metadata := input.RawMetadata
	if metadata == nil {
		encoded, err := codec.EncodeMap(input.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding metadata: %w", err)
		}
		metadata = encoded
	}

	header := Header{
		Magic:             Magic,
		Version:           input.Version,
		OriginalRawOffset: AbsentOffset,
		RevisionsOffset:   AbsentOffset,
	}
	if header.Version == 0 {
		header.Version = DefaultVersion
	}

	buffer := make([]byte, HeaderSize, estimateSize(input, len(metadata)))

	header.MetadataOffset = uint64(len(buffer))
	buffer = AppendBlob(buffer, metadata)

	if input.HasOriginalRaw || len(input.OriginalRaw) > 0 {
		header.OriginalRawOffset = uint64(len(buffer))
		buffer = AppendBlob(buffer, input.OriginalRaw)
	}

	header.ChunksOffset = uint64(len(buffer))
	buffer, chunkOffsets, err := AppendChunks(buffer, input.Chunks)
	if err != nil {
		return nil, err
	}

	if input.HasRevisions || len(input.Revisions) > 0 {
		header.RevisionsOffset = uint64(len(buffer))
		buffer, err = AppendRevisions(buffer, input.Revisions)
		if err != nil {
			return nil, err
		}
	}

	var index []IndexEntry
	if config.footerIndex {
		index = make([]IndexEntry, len(chunkOffsets))
		for position, offset := range chunkOffsets {
			index[position] = IndexEntry{ChunkID: uint32(position), Offset: offset}
		}
	}

	// The checksum covers the header, so every header field,
	// TotalSize included, must be final before the footer is written.
	header.FooterOffset = uint64(len(buffer))
	header.TotalSize = header.FooterOffset + footerCountSize + uint64(len(index))*footerIndexEntrySize + checksumSize
	encodedHeader := EncodeHeader(header)
	copy(buffer[:HeaderSize], encodedHeader[:])

	buffer, checksum, err := AppendFooter(buffer, index)
	if err != nil {
		return nil, err
	}

	return &Encoded{
		Bytes:        buffer,
		Checksum:     checksum,
		Header:       header,
		ChunkOffsets: chunkOffsets,
	}, nil
}

// EncodeTo encodes input and writes the container to w.
func EncodeTo(w io.Writer, input DocumentInput, options ...EncodeOption) (*Encoded, error) {
	encoded, err := Encode(input, options...)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(encoded.Bytes); err != nil {
		return nil, fmt.Errorf("writing container: %w", err)
	}
	return encoded, nil
}

// estimateSize returns a capacity that avoids regrowing the buffer for
// typical inputs. Chunk and revision metadata sizes are guessed.
func estimateSize(input DocumentInput, metadataLength int) int {
	size := HeaderSize + blobLengthSize + metadataLength
	size += blobLengthSize + len(input.OriginalRaw)
	size += chunkCountSize
	for _, chunk := range input.Chunks {
		size += chunkRecordHeaderSize + len(chunk.RawMetadata) + len(chunk.Data) + 32
	}
	size += revisionCountSize
	for _, revision := range input.Revisions {
		size += 16 + len(revision.Description) + len(revision.RawDelta) + 16
	}
	size += footerCountSize + len(input.Chunks)*footerIndexEntrySize + checksumSize
	return size
}
