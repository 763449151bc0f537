// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"errors"
	"fmt"
)

// MagicError reports a buffer that is not an AIF-BIN container: it is
// shorter than the fixed header, or its first eight bytes are not the
// AIF-BIN signature. It is the only error that aborts decoding.
type MagicError struct {
	// Got holds the leading bytes that were read (at most eight).
	Got []byte

	// Length is the total length of the rejected buffer.
	Length int
}

func (e *MagicError) Error() string {
	if e.Length < HeaderSize {
		return fmt.Sprintf("not an AIF-BIN file: %d bytes is shorter than the %d-byte header", e.Length, HeaderSize)
	}
	return fmt.Sprintf("not an AIF-BIN file: magic % x, expected % x", e.Got, Magic[:])
}

// IsMagicError reports whether err (or any error it wraps) is a
// *MagicError.
func IsMagicError(err error) bool {
	var target *MagicError
	return errors.As(err, &target)
}

// TruncatedError reports a read that needed more bytes than the buffer
// holds past Offset. Decoding never returns it directly; it is
// attached to the [SectionStatus] of the section that was cut short.
type TruncatedError struct {
	// What names the field being read ("blob length", "chunk 3
	// header", ...).
	What string

	// Offset is the absolute position where the read started.
	Offset uint64

	// Need is the number of bytes the read required.
	Need uint64

	// Have is the number of bytes available at Offset.
	Have uint64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("%s at offset %d truncated: need %d bytes, have %d", e.What, e.Offset, e.Need, e.Have)
}

// IsTruncated reports whether err (or any error it wraps) is a
// *TruncatedError.
func IsTruncated(err error) bool {
	var target *TruncatedError
	return errors.As(err, &target)
}

// OffsetError reports a present section offset that points at or past
// the end of the buffer.
type OffsetError struct {
	Section Section
	Offset  uint64
	Length  int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("%s offset %d is outside the %d-byte buffer", e.Section, e.Offset, e.Length)
}

// remaining returns the number of bytes in buffer at and after offset,
// or 0 when offset is past the end.
func remaining(buffer []byte, offset uint64) uint64 {
	length := uint64(len(buffer))
	if offset >= length {
		return 0
	}
	return length - offset
}

// need returns a *TruncatedError when fewer than size bytes are
// available at offset.
func need(buffer []byte, offset, size uint64, what string) error {
	if have := remaining(buffer, offset); have < size {
		return &TruncatedError{What: what, Offset: offset, Need: size, Have: have}
	}
	return nil
}
