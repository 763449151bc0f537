// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"encoding/binary"
	"fmt"
)

const (
	footerCountSize      = 4
	footerIndexEntrySize = 12
	checksumSize         = 8
)

// IndexEntry maps a chunk to the absolute offset of its record.
type IndexEntry struct {
	ChunkID uint32
	Offset  uint64
}

// Footer is the decoded integrity footer.
type Footer struct {
	Index []IndexEntry

	// DeclaredIndex is the index count stored in the footer. It
	// exceeds len(Index) when the index was truncated.
	DeclaredIndex uint32

	// Checksum is the stored checksum, or zero when fewer than eight
	// bytes follow the index.
	Checksum        uint64
	ChecksumPresent bool

	// ChecksumOffset is the absolute position of the checksum field:
	// the checksum covers buffer[:ChecksumOffset]. Meaningful only
	// when ChecksumPresent is true.
	ChecksumOffset uint64
}

// DecodeFooter reads the footer at offset. Index entries stop at the
// first one that does not fit. An unreadable index count is reported
// as a *TruncatedError with a zero Footer.
func DecodeFooter(buffer []byte, offset uint64) (Footer, error) {
	if err := need(buffer, offset, footerCountSize, "footer index count"); err != nil {
		return Footer{}, err
	}
	declared := binary.LittleEndian.Uint32(buffer[offset:])
	cursor := offset + footerCountSize

	fits := remaining(buffer, cursor) / footerIndexEntrySize
	footer := Footer{
		DeclaredIndex: declared,
		Index:         make([]IndexEntry, 0, min(uint64(declared), fits)),
	}
	for i, n := uint64(0), min(uint64(declared), fits); i < n; i++ {
		footer.Index = append(footer.Index, IndexEntry{
			ChunkID: binary.LittleEndian.Uint32(buffer[cursor:]),
			Offset:  binary.LittleEndian.Uint64(buffer[cursor+4:]),
		})
		cursor += footerIndexEntrySize
	}

	if remaining(buffer, cursor) >= checksumSize {
		footer.Checksum = binary.LittleEndian.Uint64(buffer[cursor:])
		footer.ChecksumPresent = true
		footer.ChecksumOffset = cursor
	}
	return footer, nil
}

// AppendFooter appends the footer index to dst, then a checksum over
// every byte of dst including the index. It returns the extended
// slice and the checksum written.
func AppendFooter(dst []byte, index []IndexEntry) ([]byte, uint64, error) {
	if uint64(len(index)) > maxUint32 {
		return dst, 0, fmt.Errorf("encoding footer: %d index entries exceed the u32 count field", len(index))
	}
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(index)))
	for _, entry := range index {
		dst = binary.LittleEndian.AppendUint32(dst, entry.ChunkID)
		dst = binary.LittleEndian.AppendUint64(dst, entry.Offset)
	}
	checksum := Checksum(dst)
	return binary.LittleEndian.AppendUint64(dst, checksum), checksum, nil
}

// Checksum is the footer checksum function: the sum of every byte of
// data as an unsigned 64-bit integer, wrapping on overflow.
func Checksum(data []byte) uint64 {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return sum
}
