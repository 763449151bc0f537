// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"bytes"
	"strings"
	"testing"
)

func TestHeaderRoundtrip(t *testing.T) {
	tests := []struct {
		name   string
		header Header
	}{
		{"all present", Header{
			Magic: Magic, Version: 2,
			MetadataOffset: 64, OriginalRawOffset: 120, ChunksOffset: 400,
			RevisionsOffset: 900, FooterOffset: 1000, TotalSize: 1044,
		}},
		{"sentinels", Header{
			Magic: Magic, Version: 1,
			MetadataOffset: 64, OriginalRawOffset: AbsentOffset, ChunksOffset: 90,
			RevisionsOffset: AbsentOffset, FooterOffset: AbsentOffset, TotalSize: 90,
		}},
		{"extreme values", Header{
			Magic: Magic, Version: 0xffffffff,
			MetadataOffset: AbsentOffset - 1, OriginalRawOffset: 0, ChunksOffset: 1 << 40,
			RevisionsOffset: AbsentOffset, FooterOffset: 1, TotalSize: AbsentOffset,
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded := EncodeHeader(test.header)
			decoded, err := DecodeHeader(encoded[:])
			if err != nil {
				t.Fatalf("DecodeHeader: %v", err)
			}
			if decoded != test.header {
				t.Errorf("roundtrip mismatch:\n got  %+v\n want %+v", decoded, test.header)
			}
		})
	}
}

func TestEncodeHeaderLayout(t *testing.T) {
	header := Header{Version: 2, MetadataOffset: 64, OriginalRawOffset: AbsentOffset, TotalSize: 0x0102}
	encoded := EncodeHeader(header)

	if !bytes.Equal(encoded[:8], []byte{0x41, 0x49, 0x46, 0x42, 0x49, 0x4e, 0x00, 0x01}) {
		t.Errorf("magic = % x", encoded[:8])
	}
	if !bytes.Equal(encoded[8:16], []byte{2, 0, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("version and padding = % x", encoded[8:16])
	}
	if encoded[16] != 64 {
		t.Errorf("metadata offset low byte = %d, want 64", encoded[16])
	}
	if !bytes.Equal(encoded[24:32], bytes.Repeat([]byte{0xff}, 8)) {
		t.Errorf("raw offset = % x, want sentinel", encoded[24:32])
	}
	if encoded[56] != 0x02 || encoded[57] != 0x01 {
		t.Errorf("total size bytes = % x, want little-endian 0x0102", encoded[56:58])
	}
}

func TestDecodeHeaderIgnoresPadding(t *testing.T) {
	encoded := EncodeHeader(Header{Version: 2})
	copy(encoded[12:16], []byte{0xde, 0xad, 0xbe, 0xef})
	decoded, err := DecodeHeader(encoded[:])
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if decoded.Version != 2 {
		t.Errorf("Version = %d, want 2", decoded.Version)
	}
}

func TestDecodeHeaderRejectsEveryMagicFlip(t *testing.T) {
	valid := EncodeHeader(Header{Version: 2})
	for position := 0; position < len(Magic); position++ {
		for _, mask := range []byte{0x01, 0x80, 0xff} {
			corrupted := valid
			corrupted[position] ^= mask
			_, err := DecodeHeader(corrupted[:])
			if !IsMagicError(err) {
				t.Errorf("byte %d ^ 0x%02x: err = %v, want *MagicError", position, mask, err)
			}
			document, err := Decode(corrupted[:])
			if document != nil || !IsMagicError(err) {
				t.Errorf("byte %d ^ 0x%02x: Decode returned document=%v err=%v", position, mask, document != nil, err)
			}
		}
	}
}

func TestDecodeHeaderShortBuffer(t *testing.T) {
	encoded := EncodeHeader(Header{Version: 2})
	for _, length := range []int{0, 7, 8, HeaderSize - 1} {
		_, err := DecodeHeader(encoded[:length])
		if !IsMagicError(err) {
			t.Fatalf("length %d: err = %v, want *MagicError", length, err)
		}
		if !strings.Contains(err.Error(), "shorter than") {
			t.Errorf("length %d: error %q does not mention the short buffer", length, err)
		}
	}
}

func TestHeaderBinaryMarshalers(t *testing.T) {
	original := Header{Magic: Magic, Version: 2, MetadataOffset: 64, FooterOffset: 100, TotalSize: 120}
	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if len(data) != HeaderSize {
		t.Fatalf("MarshalBinary length = %d, want %d", len(data), HeaderSize)
	}
	var decoded Header
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if decoded != original {
		t.Errorf("UnmarshalBinary = %+v, want %+v", decoded, original)
	}
}

func TestParseSection(t *testing.T) {
	for _, section := range append(AllSections, SectionHeader) {
		parsed, err := ParseSection(section.String())
		if err != nil {
			t.Fatalf("ParseSection(%q): %v", section, err)
		}
		if parsed != section {
			t.Errorf("ParseSection(%q) = %v", section, parsed)
		}
	}
	if _, err := ParseSection("trailer"); err == nil {
		t.Error("ParseSection(trailer) succeeded")
	}
}
