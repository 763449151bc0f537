// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"
)

func TestVerifyCleanContainer(t *testing.T) {
	report := Verify(mustDecode(t, mustEncode(t, fullInput()).Bytes))
	if !report.OK() {
		t.Fatalf("clean container has warnings: %+v", report.Warnings())
	}
	if !report.Has(FindingChecksumOK) {
		t.Error("missing checksum-ok finding")
	}
	if !report.Has(FindingUnknownChunkType) {
		t.Error("chunk type 99 was not noted")
	}
	if report.StoredChecksum != report.ComputedChecksum || report.StoredChecksum == 0 {
		t.Errorf("checksums stored %d computed %d", report.StoredChecksum, report.ComputedChecksum)
	}
}

func TestVerifyEmptyFooterIndexIsInformational(t *testing.T) {
	report := Verify(mustDecode(t, mustEncode(t, scenarioInput(), WithoutFooterIndex()).Bytes))
	if !report.OK() {
		t.Fatalf("warnings: %+v", report.Warnings())
	}
	if !report.Has(FindingIndexCount) {
		t.Error("empty index was not noted")
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(buffer []byte, document *Document) []byte
		code    string
	}{
		{
			name: "payload byte flipped",
			corrupt: func(buffer []byte, document *Document) []byte {
				buffer[document.Chunks[0].Span.End-1] ^= 0x01
				return buffer
			},
			code: FindingChecksumMismatch,
		},
		{
			name: "total size wrong",
			corrupt: func(buffer []byte, _ *Document) []byte {
				binary.LittleEndian.PutUint64(buffer[56:], 7)
				return buffer
			},
			code: FindingTotalSize,
		},
		{
			name: "checksum cut off",
			corrupt: func(buffer []byte, _ *Document) []byte {
				return buffer[:len(buffer)-4]
			},
			code: FindingChecksumMissing,
		},
		{
			name: "footer offset out of range",
			corrupt: func(buffer []byte, _ *Document) []byte {
				binary.LittleEndian.PutUint64(buffer[48:], 1<<30)
				return buffer
			},
			code: FindingSectionOutOfRange,
		},
		{
			name: "index entry moved",
			corrupt: func(buffer []byte, document *Document) []byte {
				entry := document.Header.FooterOffset + 4 + 4
				binary.LittleEndian.PutUint64(buffer[entry:], document.Chunks[0].Span.Start+1)
				return buffer
			},
			code: FindingIndexMismatch,
		},
		{
			name: "index entry past end",
			corrupt: func(buffer []byte, document *Document) []byte {
				entry := document.Header.FooterOffset + 4 + 4
				binary.LittleEndian.PutUint64(buffer[entry:], 1<<40)
				return buffer
			},
			code: FindingIndexOutOfRange,
		},
		{
			name: "sections out of order",
			corrupt: func(buffer []byte, document *Document) []byte {
				binary.LittleEndian.PutUint64(buffer[24:], document.Header.ChunksOffset+4)
				return buffer
			},
			code: FindingSectionOrder,
		},
		{
			name: "chunk count inflated",
			corrupt: func(buffer []byte, document *Document) []byte {
				binary.LittleEndian.PutUint32(buffer[document.Header.ChunksOffset:], 9)
				return buffer
			},
			code: FindingChunkCount,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded := mustEncode(t, fullInput())
			original := mustDecode(t, encoded.Bytes)
			corrupted := test.corrupt(bytes.Clone(encoded.Bytes), original)

			report := Verify(mustDecode(t, corrupted))
			if report.OK() {
				t.Fatal("corrupted container verified clean")
			}
			if !report.Has(test.code) {
				t.Errorf("findings %+v do not include %s", report.Findings, test.code)
			}
		})
	}
}

func TestVerifyUndecodablePayloads(t *testing.T) {
	input := fullInput()
	input.RawMetadata = []byte{0xc1}
	input.Chunks[0].RawMetadata = []byte{0xc1}
	input.Revisions[0].RawDelta = []byte{}
	report := Verify(mustDecode(t, mustEncode(t, input).Bytes))
	for _, code := range []string{FindingMetadataDecode, FindingChunkMetadata, FindingRevisionDelta} {
		if !report.Has(code) {
			t.Errorf("missing %s", code)
		}
	}
	// The checksum is still correct; only payloads are bad.
	if report.Has(FindingChecksumMismatch) {
		t.Error("unexpected checksum mismatch")
	}
}

func TestFindingJSON(t *testing.T) {
	encoded, err := json.Marshal(Finding{Code: FindingTotalSize, Severity: SeverityWarning, Message: "m"})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(encoded), `"severity":"warning"`) {
		t.Errorf("finding JSON = %s", encoded)
	}
}
