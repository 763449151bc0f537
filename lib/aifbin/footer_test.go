// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"encoding/binary"
	"testing"
)

func TestFooterRoundtrip(t *testing.T) {
	prefix := []byte{1, 2, 3, 250}
	index := []IndexEntry{{ChunkID: 0, Offset: 100}, {ChunkID: 1, Offset: 1 << 33}}
	buffer, checksum, err := AppendFooter(append([]byte(nil), prefix...), index)
	if err != nil {
		t.Fatalf("AppendFooter: %v", err)
	}
	footerStart := uint64(len(prefix))
	if want := footerStart + 4 + 24 + 8; uint64(len(buffer)) != want {
		t.Fatalf("buffer length = %d, want %d", len(buffer), want)
	}
	if checksum != Checksum(buffer[:len(buffer)-8]) {
		t.Errorf("returned checksum %d does not cover the bytes before it", checksum)
	}

	footer, err := DecodeFooter(buffer, footerStart)
	if err != nil {
		t.Fatalf("DecodeFooter: %v", err)
	}
	if len(footer.Index) != 2 || footer.Index[1] != index[1] || footer.DeclaredIndex != 2 {
		t.Errorf("Index = %+v (declared %d)", footer.Index, footer.DeclaredIndex)
	}
	if !footer.ChecksumPresent || footer.Checksum != checksum {
		t.Errorf("Checksum = %d present=%v, want %d", footer.Checksum, footer.ChecksumPresent, checksum)
	}
	if footer.ChecksumOffset != uint64(len(buffer))-8 {
		t.Errorf("ChecksumOffset = %d", footer.ChecksumOffset)
	}
}

func TestDecodeFooterChecksumAbsent(t *testing.T) {
	// Index count 0 followed by fewer than 8 bytes.
	buffer := append(binary.LittleEndian.AppendUint32(nil, 0), 1, 2, 3, 4, 5)
	footer, err := DecodeFooter(buffer, 0)
	if err != nil {
		t.Fatalf("DecodeFooter: %v", err)
	}
	if footer.ChecksumPresent || footer.Checksum != 0 {
		t.Errorf("Checksum = %d present=%v, want absent zero", footer.Checksum, footer.ChecksumPresent)
	}
}

func TestDecodeFooterTruncatedIndex(t *testing.T) {
	buffer := binary.LittleEndian.AppendUint32(nil, 1000)
	buffer = binary.LittleEndian.AppendUint32(buffer, 7)
	buffer = binary.LittleEndian.AppendUint64(buffer, 42)
	buffer = append(buffer, 0, 0, 0)

	footer, err := DecodeFooter(buffer, 0)
	if err != nil {
		t.Fatalf("DecodeFooter: %v", err)
	}
	if len(footer.Index) != 1 || footer.DeclaredIndex != 1000 {
		t.Errorf("parsed %d of %d index entries, want 1 of 1000", len(footer.Index), footer.DeclaredIndex)
	}
	if footer.Index[0] != (IndexEntry{ChunkID: 7, Offset: 42}) {
		t.Errorf("entry = %+v", footer.Index[0])
	}
	if footer.ChecksumPresent {
		t.Error("checksum reported present with 3 trailing bytes")
	}
}

func TestDecodeFooterShortCount(t *testing.T) {
	if _, err := DecodeFooter([]byte{0, 0}, 0); !IsTruncated(err) {
		t.Errorf("err = %v, want *TruncatedError", err)
	}
}

func TestChecksum(t *testing.T) {
	if Checksum(nil) != 0 {
		t.Error("Checksum(nil) != 0")
	}
	if got := Checksum([]byte{1, 2, 255}); got != 258 {
		t.Errorf("Checksum = %d, want 258", got)
	}
	large := make([]byte, 1<<16)
	for index := range large {
		large[index] = 0xff
	}
	if got := Checksum(large); got != 0xff*(1<<16) {
		t.Errorf("Checksum(64KiB of 0xff) = %d", got)
	}
}
