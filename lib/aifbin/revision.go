// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/aifbin/aifbin/lib/codec"
)

const maxUint32 = math.MaxUint32

// Revision is one entry of the revision log.
type Revision struct {
	// Description is stored as-is. Invalid UTF-8 is kept byte for
	// byte rather than replaced.
	Description string

	// Delta is the decoded change payload, or a decode error.
	Delta codec.MapResult

	// RawDelta is the undecoded delta payload.
	RawDelta []byte

	// Timestamp is opaque: writers have used both seconds and
	// milliseconds since the epoch.
	Timestamp uint64

	Span ByteRange
}

// RevisionInput is one revision to encode.
type RevisionInput struct {
	Description string

	// Delta is encoded as MessagePack unless RawDelta is set.
	Delta    codec.Value
	RawDelta []byte

	Timestamp uint64
}

const revisionCountSize = 4

// RevisionReader iterates the records of a revision log, stopping at
// the first record with any field (description, delta, timestamp)
// that does not fit in the buffer.
type RevisionReader struct {
	buffer   []byte
	cursor   uint64
	declared uint32
	next     int
	err      error
}

// NewRevisionReader positions a reader at the revision count stored at
// offset. It fails with a *TruncatedError when the count cannot be
// read.
func NewRevisionReader(buffer []byte, offset uint64) (*RevisionReader, error) {
	if err := need(buffer, offset, revisionCountSize, "revision count"); err != nil {
		return nil, err
	}
	return &RevisionReader{
		buffer:   buffer,
		cursor:   offset + revisionCountSize,
		declared: binary.LittleEndian.Uint32(buffer[offset:]),
	}, nil
}

// Declared returns the record count stored in the log.
func (r *RevisionReader) Declared() uint32 { return r.declared }

// Err returns the reason iteration stopped early, or nil.
func (r *RevisionReader) Err() error { return r.err }

// Next decodes the next revision. It returns false once the declared
// count is reached or a field is truncated.
func (r *RevisionReader) Next() (Revision, bool) {
	if r.err != nil || r.next >= int(r.declared) {
		return Revision{}, false
	}
	start := r.cursor

	description, cursor, err := r.readField(start, "description")
	if err != nil {
		r.err = err
		return Revision{}, false
	}
	delta, cursor, err := r.readField(cursor, "delta")
	if err != nil {
		r.err = err
		return Revision{}, false
	}
	if err := need(r.buffer, cursor, 8, fmt.Sprintf("revision %d timestamp", r.next)); err != nil {
		r.err = err
		return Revision{}, false
	}
	timestamp := binary.LittleEndian.Uint64(r.buffer[cursor:])
	cursor += 8

	r.cursor = cursor
	r.next++
	return Revision{
		Description: string(description),
		Delta:       codec.DecodeMap(delta),
		RawDelta:    delta,
		Timestamp:   timestamp,
		Span:        ByteRange{Start: start, End: cursor},
	}, true
}

// readField reads one u32-length-prefixed field at offset.
func (r *RevisionReader) readField(offset uint64, field string) ([]byte, uint64, error) {
	what := fmt.Sprintf("revision %d %s", r.next, field)
	if err := need(r.buffer, offset, 4, what+" length"); err != nil {
		return nil, offset, err
	}
	length := uint64(binary.LittleEndian.Uint32(r.buffer[offset:]))
	start := offset + 4
	if available := remaining(r.buffer, start); length > available {
		return nil, offset, &TruncatedError{What: what, Offset: start, Need: length, Have: available}
	}
	end := start + length
	return r.buffer[start:end:end], end, nil
}

// DecodeRevisions reads every complete record of the revision log at
// offset, returning them with the declared count.
func DecodeRevisions(buffer []byte, offset uint64) ([]Revision, uint32) {
	reader, err := NewRevisionReader(buffer, offset)
	if err != nil {
		return nil, 0
	}
	// The smallest record is 16 bytes: two empty length prefixes and
	// the timestamp.
	revisions := make([]Revision, 0, min(uint64(reader.Declared()), remaining(buffer, offset)/16))
	for {
		revision, ok := reader.Next()
		if !ok {
			break
		}
		revisions = append(revisions, revision)
	}
	return revisions, reader.Declared()
}

// AppendRevisions appends a revision log to dst. Descriptions and
// deltas longer than a u32 length prefix can express are an error.
func AppendRevisions(dst []byte, revisions []RevisionInput) ([]byte, error) {
	if uint64(len(revisions)) > maxUint32 {
		return dst, fmt.Errorf("encoding revisions: %d revisions exceed the u32 count field", len(revisions))
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(revisions)))
	for index, revision := range revisions {
		if uint64(len(revision.Description)) > maxUint32 {
			return dst, fmt.Errorf("encoding revision %d: description of %d bytes exceeds the u32 length field", index, len(revision.Description))
		}
		delta := revision.RawDelta
		if delta == nil {
			encoded, err := codec.EncodeMap(revision.Delta)
			if err != nil {
				return dst, fmt.Errorf("encoding revision %d delta: %w", index, err)
			}
			delta = encoded
		}
		if uint64(len(delta)) > maxUint32 {
			return dst, fmt.Errorf("encoding revision %d: delta of %d bytes exceeds the u32 length field", index, len(delta))
		}
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(revision.Description)))
		dst = append(dst, revision.Description...)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(delta)))
		dst = append(dst, delta...)
		dst = binary.LittleEndian.AppendUint64(dst, revision.Timestamp)
	}
	return dst, nil
}
