// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import (
	"strings"
	"testing"

	"github.com/aifbin/aifbin/lib/codec"
)

func sampleRevisions() []RevisionInput {
	return []RevisionInput{
		{Description: "init", Delta: codec.Map(), Timestamp: 1700000000},
		{Description: "edit", Delta: codec.Map(codec.Field("title", codec.String("T2"))), Timestamp: 1700000100},
	}
}

func TestRevisionsRoundtrip(t *testing.T) {
	inputs := append(sampleRevisions(), RevisionInput{
		Description: "bad \xff utf8",
		RawDelta:    []byte{0xc1},
		Timestamp:   0,
	})
	section, err := AppendRevisions(nil, inputs)
	if err != nil {
		t.Fatalf("AppendRevisions: %v", err)
	}
	revisions, declared := DecodeRevisions(section, 0)
	if declared != 3 || len(revisions) != 3 {
		t.Fatalf("parsed %d of %d, want 3 of 3", len(revisions), declared)
	}
	for index, revision := range revisions {
		if revision.Description != inputs[index].Description {
			t.Errorf("revision %d description = %q, want %q", index, revision.Description, inputs[index].Description)
		}
		if revision.Timestamp != inputs[index].Timestamp {
			t.Errorf("revision %d timestamp = %d", index, revision.Timestamp)
		}
	}
	if got := revisions[1].Delta.Value.GetString("title"); got != "T2" {
		t.Errorf("revision 1 delta title = %q, want T2", got)
	}
	if revisions[2].Delta.Err == nil {
		t.Error("garbage delta decoded without error")
	}
	if revisions[2].Span.End != uint64(len(section)) {
		t.Errorf("last span end = %d, want %d", revisions[2].Span.End, len(section))
	}
}

func TestRevisionReaderTruncationAtEachField(t *testing.T) {
	section, err := AppendRevisions(nil, sampleRevisions())
	if err != nil {
		t.Fatalf("AppendRevisions: %v", err)
	}
	// Layout: count (4), then per record: description length (4) +
	// "init"/"edit" (4), delta length (4) + delta, timestamp (8).
	first, _ := NewRevisionReader(section, 0)
	first.Next()
	secondStart := first.cursor

	tests := []struct {
		name  string
		keep  uint64
		field string
	}{
		{"description length", secondStart + 2, "description length"},
		{"description bytes", secondStart + 4 + 2, "description"},
		{"delta length", secondStart + 8 + 1, "delta length"},
		{"delta bytes", secondStart + 12 + 1, "delta"},
		{"timestamp", secondStart + 12 + uint64(len(sampleDelta(t))) + 3, "timestamp"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reader, err := NewRevisionReader(section[:test.keep], 0)
			if err != nil {
				t.Fatalf("NewRevisionReader: %v", err)
			}
			var parsed []Revision
			for {
				revision, ok := reader.Next()
				if !ok {
					break
				}
				parsed = append(parsed, revision)
			}
			if len(parsed) != 1 || parsed[0].Description != "init" {
				t.Fatalf("parsed %d revisions, want only the first", len(parsed))
			}
			truncated, ok := reader.Err().(*TruncatedError)
			if !ok {
				t.Fatalf("Err = %v, want *TruncatedError", reader.Err())
			}
			if !strings.HasSuffix(truncated.What, test.field) {
				t.Errorf("What = %q, want suffix %q", truncated.What, test.field)
			}
		})
	}
}

func sampleDelta(t *testing.T) []byte {
	t.Helper()
	encoded, err := codec.EncodeMap(sampleRevisions()[1].Delta)
	if err != nil {
		t.Fatalf("EncodeMap: %v", err)
	}
	return encoded
}

func TestDecodeRevisionsEmptyLog(t *testing.T) {
	section, err := AppendRevisions(nil, nil)
	if err != nil {
		t.Fatalf("AppendRevisions: %v", err)
	}
	if len(section) != 4 {
		t.Fatalf("empty log is %d bytes, want 4", len(section))
	}
	revisions, declared := DecodeRevisions(section, 0)
	if len(revisions) != 0 || declared != 0 {
		t.Errorf("parsed %d of %d", len(revisions), declared)
	}
	if _, err := NewRevisionReader(section[:3], 0); !IsTruncated(err) {
		t.Errorf("short count: err = %v, want *TruncatedError", err)
	}
}
