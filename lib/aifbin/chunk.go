// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/aifbin/aifbin/lib/codec"
)

// ChunkType classifies a content chunk. Codes outside the named set
// are preserved as-is and render as "Unknown(n)".
type ChunkType uint32

const (
	ChunkText      ChunkType = 1
	ChunkTableJSON ChunkType = 2
	ChunkImage     ChunkType = 3
	ChunkAudio     ChunkType = 4
	ChunkVideo     ChunkType = 5
	ChunkCode      ChunkType = 6
)

var chunkTypeNames = map[ChunkType]string{
	ChunkText:      "Text",
	ChunkTableJSON: "TableJSON",
	ChunkImage:     "Image",
	ChunkAudio:     "Audio",
	ChunkVideo:     "Video",
	ChunkCode:      "Code",
}

func (t ChunkType) String() string {
	if name, ok := chunkTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint32(t))
}

// Known reports whether t is one of the named chunk types.
func (t ChunkType) Known() bool {
	_, ok := chunkTypeNames[t]
	return ok
}

// ParseChunkType accepts a chunk type name (case-insensitive, with
// "table_json" and "table-json" as aliases for TableJSON), the
// "Unknown(n)" form produced by String, or a decimal code.
func ParseChunkType(text string) (ChunkType, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	name := strings.NewReplacer("_", "", "-", "").Replace(trimmed)
	for chunkType, typeName := range chunkTypeNames {
		if strings.ToLower(typeName) == name {
			return chunkType, nil
		}
	}
	number := trimmed
	if inner, ok := strings.CutPrefix(number, "unknown("); ok {
		number = strings.TrimSuffix(inner, ")")
	}
	code, err := strconv.ParseUint(number, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown chunk type %q", text)
	}
	return ChunkType(code), nil
}

// ByteRange is a half-open [Start, End) span of absolute buffer
// offsets.
type ByteRange struct {
	Start uint64
	End   uint64
}

// Len returns End - Start.
func (r ByteRange) Len() uint64 { return r.End - r.Start }

// Chunk is one decoded content chunk.
type Chunk struct {
	// ID is the chunk's position in the sequence, assigned at decode.
	ID int

	Type           ChunkType
	DataLength     uint64
	MetadataLength uint64

	// Metadata is the decoded chunk metadata, or a decode error.
	Metadata codec.MapResult

	// RawMetadata is the undecoded metadata payload. Re-encoding from
	// it is lossless even when Metadata failed to decode.
	RawMetadata []byte

	// Data is the chunk payload. It aliases the decoded buffer.
	Data []byte

	// Span covers the whole record: its 20-byte header, metadata and
	// data.
	Span ByteRange
}

// Label returns the "label" entry of the chunk metadata, falling back
// to "caption" as used by image chunks.
func (c Chunk) Label() string {
	if label := c.Metadata.Value.GetString("label"); label != "" {
		return label
	}
	return c.Metadata.Value.GetString("caption")
}

// ChunkInput is one chunk to encode.
type ChunkInput struct {
	Type ChunkType

	// Metadata is encoded as MessagePack unless RawMetadata is set.
	Metadata codec.Value

	// RawMetadata, when non-nil, is written verbatim in place of the
	// encoded Metadata.
	RawMetadata []byte

	Data []byte
}

const (
	chunkCountSize        = 4
	chunkRecordHeaderSize = 20
)

// ChunkReader iterates the chunk records of a section. Iteration stops
// at the first record that does not fit in the buffer; Err then
// reports why.
type ChunkReader struct {
	buffer   []byte
	cursor   uint64
	declared uint32
	next     int
	err      error
}

// NewChunkReader positions a reader at the chunk count stored at
// offset. It fails with a *TruncatedError when the count itself cannot
// be read.
func NewChunkReader(buffer []byte, offset uint64) (*ChunkReader, error) {
	if err := need(buffer, offset, chunkCountSize, "chunk count"); err != nil {
		return nil, err
	}
	return &ChunkReader{
		buffer:   buffer,
		cursor:   offset + chunkCountSize,
		declared: binary.LittleEndian.Uint32(buffer[offset:]),
	}, nil
}

// Declared returns the record count stored in the section.
func (r *ChunkReader) Declared() uint32 { return r.declared }

// Err returns the reason iteration stopped before reaching the
// declared count, or nil.
func (r *ChunkReader) Err() error { return r.err }

// Offset returns the position just past the last record read.
func (r *ChunkReader) Offset() uint64 { return r.cursor }

// Next decodes the next record. It returns false once the declared
// count is reached or a record is truncated.
func (r *ChunkReader) Next() (Chunk, bool) {
	if r.err != nil || r.next >= int(r.declared) {
		return Chunk{}, false
	}
	start := r.cursor
	what := fmt.Sprintf("chunk %d header", r.next)
	if err := need(r.buffer, start, chunkRecordHeaderSize, what); err != nil {
		r.err = err
		return Chunk{}, false
	}
	record := r.buffer[start:]
	chunkType := ChunkType(binary.LittleEndian.Uint32(record[0:]))
	dataLength := binary.LittleEndian.Uint64(record[4:])
	metadataLength := binary.LittleEndian.Uint64(record[12:])

	metadataStart := start + chunkRecordHeaderSize
	available := remaining(r.buffer, metadataStart)
	if metadataLength > available {
		r.err = &TruncatedError{What: fmt.Sprintf("chunk %d metadata", r.next), Offset: metadataStart, Need: metadataLength, Have: available}
		return Chunk{}, false
	}
	dataStart := metadataStart + metadataLength
	available -= metadataLength
	if dataLength > available {
		r.err = &TruncatedError{What: fmt.Sprintf("chunk %d data", r.next), Offset: dataStart, Need: dataLength, Have: available}
		return Chunk{}, false
	}
	dataEnd := dataStart + dataLength

	rawMetadata := r.buffer[metadataStart:dataStart:dataStart]
	chunk := Chunk{
		ID:             r.next,
		Type:           chunkType,
		DataLength:     dataLength,
		MetadataLength: metadataLength,
		Metadata:       codec.DecodeMap(rawMetadata),
		RawMetadata:    rawMetadata,
		Data:           r.buffer[dataStart:dataEnd:dataEnd],
		Span:           ByteRange{Start: start, End: dataEnd},
	}
	r.cursor = dataEnd
	r.next++
	return chunk, true
}

// DecodeChunks reads every complete record of the chunk section at
// offset. It returns the parsed chunks and the declared count; a
// shorter slice than declared means the section was truncated. An
// unreadable count yields no chunks and a declared count of zero.
func DecodeChunks(buffer []byte, offset uint64) ([]Chunk, uint32) {
	reader, err := NewChunkReader(buffer, offset)
	if err != nil {
		return nil, 0
	}
	chunks := make([]Chunk, 0, min(uint64(reader.Declared()), remaining(buffer, offset)/chunkRecordHeaderSize))
	for {
		chunk, ok := reader.Next()
		if !ok {
			break
		}
		chunks = append(chunks, chunk)
	}
	return chunks, reader.Declared()
}

// AppendChunks appends a chunk section (count, then one record per
// chunk) to dst. It returns the extended slice and the absolute start
// offset of every record within it, for the footer index.
func AppendChunks(dst []byte, chunks []ChunkInput) ([]byte, []uint64, error) {
	if uint64(len(chunks)) > maxUint32 {
		return dst, nil, fmt.Errorf("encoding chunks: %d chunks exceed the u32 count field", len(chunks))
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(chunks)))
	starts := make([]uint64, 0, len(chunks))
	for index, chunk := range chunks {
		metadata := chunk.RawMetadata
		if metadata == nil {
			encoded, err := codec.EncodeMap(chunk.Metadata)
			if err != nil {
				return dst, nil, fmt.Errorf("encoding chunk %d metadata: %w", index, err)
			}
			metadata = encoded
		}
		starts = append(starts, uint64(len(dst)))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(chunk.Type))
		dst = binary.LittleEndian.AppendUint64(dst, uint64(len(chunk.Data)))
		dst = binary.LittleEndian.AppendUint64(dst, uint64(len(metadata)))
		dst = append(dst, metadata...)
		dst = append(dst, chunk.Data...)
	}
	return dst, starts, nil
}
