// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// HeaderSize is the fixed size of the container header.
	HeaderSize = 64

	// AbsentOffset in a header offset field marks the section as
	// absent.
	AbsentOffset uint64 = math.MaxUint64

	// DefaultVersion is the format version Encode writes when the
	// input leaves Version zero.
	DefaultVersion uint32 = 2
)

// Magic is the 8-byte signature every AIF-BIN file starts with:
// "AIFBIN" followed by 0x00 0x01.
var Magic = [8]byte{'A', 'I', 'F', 'B', 'I', 'N', 0x00, 0x01}

// Header field positions. Bytes 12-15 are padding.
const (
	versionPosition     = 8
	metadataPosition    = 16
	originalRawPosition = 24
	chunksPosition      = 32
	revisionsPosition   = 40
	footerPosition      = 48
	totalSizePosition   = 56
)

// Header is the fixed 64-byte container header.
type Header struct {
	Magic   [8]byte
	Version uint32

	// Absolute section offsets. AbsentOffset marks a missing section.
	MetadataOffset    uint64
	OriginalRawOffset uint64
	ChunksOffset      uint64
	RevisionsOffset   uint64
	FooterOffset      uint64

	// TotalSize is the container length recorded by the writer. It is
	// not trusted on decode; Verify compares it to the buffer.
	TotalSize uint64
}

// Section names one of the five offset-addressed regions.
type Section uint8

const (
	SectionMetadata Section = iota
	SectionOriginalRaw
	SectionChunks
	SectionRevisions
	SectionFooter

	// SectionHeader names the fixed header itself. It has no offset
	// field and is not part of AllSections.
	SectionHeader
)

// AllSections lists every section in layout order.
var AllSections = []Section{SectionMetadata, SectionOriginalRaw, SectionChunks, SectionRevisions, SectionFooter}

func (s Section) String() string {
	switch s {
	case SectionMetadata:
		return "metadata"
	case SectionOriginalRaw:
		return "raw"
	case SectionChunks:
		return "chunks"
	case SectionRevisions:
		return "revisions"
	case SectionFooter:
		return "footer"
	case SectionHeader:
		return "header"
	default:
		return fmt.Sprintf("section(%d)", uint8(s))
	}
}

// ParseSection is the inverse of Section.String. "original_raw" is
// accepted for raw.
func ParseSection(name string) (Section, error) {
	switch name {
	case "metadata":
		return SectionMetadata, nil
	case "raw", "original_raw":
		return SectionOriginalRaw, nil
	case "chunks":
		return SectionChunks, nil
	case "revisions":
		return SectionRevisions, nil
	case "footer":
		return SectionFooter, nil
	case "header":
		return SectionHeader, nil
	default:
		return 0, fmt.Errorf("unknown section %q (expected header, metadata, raw, chunks, revisions, or footer)", name)
	}
}

// Offset returns the header offset of section.
func (h Header) Offset(section Section) uint64 {
	switch section {
	case SectionMetadata:
		return h.MetadataOffset
	case SectionOriginalRaw:
		return h.OriginalRawOffset
	case SectionChunks:
		return h.ChunksOffset
	case SectionRevisions:
		return h.RevisionsOffset
	case SectionFooter:
		return h.FooterOffset
	case SectionHeader:
		return 0
	}
	return AbsentOffset
}

// DecodeHeader reads the fixed header from the start of buffer. A
// buffer shorter than HeaderSize, or one whose first eight bytes are
// not Magic, returns a *MagicError.
func DecodeHeader(buffer []byte) (Header, error) {
	if len(buffer) < HeaderSize {
		got := buffer[:min(len(buffer), len(Magic))]
		return Header{}, &MagicError{Got: append([]byte(nil), got...), Length: len(buffer)}
	}
	var header Header
	copy(header.Magic[:], buffer[:8])
	if header.Magic != Magic {
		return Header{}, &MagicError{Got: append([]byte(nil), buffer[:8]...), Length: len(buffer)}
	}
	header.Version = binary.LittleEndian.Uint32(buffer[versionPosition:])
	header.MetadataOffset = binary.LittleEndian.Uint64(buffer[metadataPosition:])
	header.OriginalRawOffset = binary.LittleEndian.Uint64(buffer[originalRawPosition:])
	header.ChunksOffset = binary.LittleEndian.Uint64(buffer[chunksPosition:])
	header.RevisionsOffset = binary.LittleEndian.Uint64(buffer[revisionsPosition:])
	header.FooterOffset = binary.LittleEndian.Uint64(buffer[footerPosition:])
	header.TotalSize = binary.LittleEndian.Uint64(buffer[totalSizePosition:])
	return header, nil
}

// EncodeHeader writes h in the fixed layout with zeroed padding. A
// zero Magic is written as the AIF-BIN signature so callers building
// a Header by hand need not set it.
func EncodeHeader(h Header) [HeaderSize]byte {
	var out [HeaderSize]byte
	magic := h.Magic
	if magic == ([8]byte{}) {
		magic = Magic
	}
	copy(out[:8], magic[:])
	binary.LittleEndian.PutUint32(out[versionPosition:], h.Version)
	binary.LittleEndian.PutUint64(out[metadataPosition:], h.MetadataOffset)
	binary.LittleEndian.PutUint64(out[originalRawPosition:], h.OriginalRawOffset)
	binary.LittleEndian.PutUint64(out[chunksPosition:], h.ChunksOffset)
	binary.LittleEndian.PutUint64(out[revisionsPosition:], h.RevisionsOffset)
	binary.LittleEndian.PutUint64(out[footerPosition:], h.FooterOffset)
	binary.LittleEndian.PutUint64(out[totalSizePosition:], h.TotalSize)
	return out
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	encoded := EncodeHeader(h)
	return encoded[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeHeader(data)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
