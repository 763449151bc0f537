// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import "encoding/binary"

// blobLengthSize is the width of the length prefix in front of every
// metadata and original-raw blob.
const blobLengthSize = 8

// ReadBlob reads a length-prefixed blob at offset: an 8-byte
// little-endian length L followed by L payload bytes. It returns the
// payload (a sub-slice of buffer) and the offset just past it.
//
// A prefix or payload that runs past the end of buffer yields a
// *TruncatedError. The length is compared against the bytes that
// remain, so a hostile L near 2^64 cannot wrap the bounds check.
func ReadBlob(buffer []byte, offset uint64) ([]byte, uint64, error) {
	if err := need(buffer, offset, blobLengthSize, "blob length"); err != nil {
		return nil, offset, err
	}
	length := binary.LittleEndian.Uint64(buffer[offset:])
	start := offset + blobLengthSize
	if available := remaining(buffer, start); length > available {
		return nil, offset, &TruncatedError{What: "blob payload", Offset: start, Need: length, Have: available}
	}
	end := start + length
	return buffer[start:end:end], end, nil
}

// AppendBlob appends the length prefix and payload to dst. There is no
// padding or alignment.
func AppendBlob(dst, payload []byte) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, uint64(len(payload)))
	return append(dst, payload...)
}
