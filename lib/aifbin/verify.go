// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import "fmt"

// Severity grades a verification finding.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "info"
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding codes. Codes are stable identifiers for scripts; messages
// are for people.
const (
	FindingChecksumOK        = "checksum-ok"
	FindingChecksumMissing   = "checksum-missing"
	FindingChecksumMismatch  = "checksum-mismatch"
	FindingTotalSize         = "total-size-mismatch"
	FindingSectionOutOfRange = "section-out-of-range"
	FindingSectionTruncated  = "section-truncated"
	FindingSectionOrder      = "section-order"
	FindingHeaderOverlap     = "section-overlaps-header"
	FindingMetadataDecode    = "metadata-undecodable"
	FindingChunkMetadata     = "chunk-metadata-undecodable"
	FindingRevisionDelta     = "revision-delta-undecodable"
	FindingChunkCount        = "chunk-count-mismatch"
	FindingRevisionCount     = "revision-count-mismatch"
	FindingIndexCount        = "index-count"
	FindingIndexOutOfRange   = "index-out-of-range"
	FindingIndexMismatch     = "index-mismatch"
	FindingUnknownChunkType  = "unknown-chunk-type"
)

// Finding is one observation about a decoded container.
type Finding struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the result of Verify.
type Report struct {
	Findings []Finding

	// StoredChecksum and ComputedChecksum are both zero when the
	// footer carries no checksum.
	StoredChecksum   uint64
	ComputedChecksum uint64
}

// OK reports whether the report holds no warnings.
func (r Report) OK() bool {
	return len(r.Warnings()) == 0
}

// Warnings returns the findings with SeverityWarning.
func (r Report) Warnings() []Finding {
	var warnings []Finding
	for _, finding := range r.Findings {
		if finding.Severity == SeverityWarning {
			warnings = append(warnings, finding)
		}
	}
	return warnings
}

// Has reports whether the report contains a finding with code.
func (r Report) Has(code string) bool {
	for _, finding := range r.Findings {
		if finding.Code == code {
			return true
		}
	}
	return false
}

func (r *Report) add(severity Severity, code, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Code: code, Severity: severity, Message: fmt.Sprintf(format, args...)})
}

// Verify checks a decoded document for integrity problems: checksum
// presence and match, recorded total size, section placement, declared
// versus parsed counts, payload decode failures, and footer index
// consistency. It never fails; every problem becomes a Finding.
func Verify(document *Document) Report {
	var report Report
	bufferLength := uint64(len(document.Source))

	footer := document.Footer
	if !document.Status(SectionFooter).Usable() || !footer.ChecksumPresent {
		report.add(SeverityWarning, FindingChecksumMissing, "footer carries no checksum")
	} else {
		report.StoredChecksum = footer.Checksum
		report.ComputedChecksum = Checksum(document.Source[:footer.ChecksumOffset])
		if report.StoredChecksum == report.ComputedChecksum {
			report.add(SeverityInfo, FindingChecksumOK, "checksum 0x%016x matches", report.StoredChecksum)
		} else {
			report.add(SeverityWarning, FindingChecksumMismatch, "stored checksum 0x%016x, computed 0x%016x", report.StoredChecksum, report.ComputedChecksum)
		}
	}

	if document.Header.TotalSize != bufferLength {
		report.add(SeverityWarning, FindingTotalSize, "header records %d bytes, file has %d", document.Header.TotalSize, bufferLength)
	}

	var previous *SectionStatus
	for index := range document.Sections {
		status := document.Sections[index]
		switch status.State {
		case SectionOutOfRange:
			report.add(SeverityWarning, FindingSectionOutOfRange, "%s offset %d is past the end of the %d-byte file", status.Section, status.Offset, bufferLength)
		case SectionTruncated:
			report.add(SeverityWarning, FindingSectionTruncated, "%s section: %v", status.Section, status.Err)
		}
		if status.State == SectionAbsent || status.State == SectionOutOfRange {
			continue
		}
		if status.Offset < HeaderSize {
			report.add(SeverityWarning, FindingHeaderOverlap, "%s offset %d lies inside the %d-byte header", status.Section, status.Offset, HeaderSize)
		}
		if previous != nil && status.Offset < previous.Offset {
			report.add(SeverityWarning, FindingSectionOrder, "%s offset %d precedes %s offset %d", status.Section, status.Offset, previous.Section, previous.Offset)
		}
		previous = &document.Sections[index]
	}

	if document.Status(SectionMetadata).State == SectionPresent && document.Metadata.Err != nil {
		report.add(SeverityWarning, FindingMetadataDecode, "metadata: %s", document.Metadata.Err.Reason)
	}

	if uint32(len(document.Chunks)) != document.DeclaredChunks {
		report.add(SeverityWarning, FindingChunkCount, "chunk count declares %d, parsed %d", document.DeclaredChunks, len(document.Chunks))
	}
	for _, chunk := range document.Chunks {
		if chunk.Metadata.Err != nil {
			report.add(SeverityWarning, FindingChunkMetadata, "chunk %d metadata: %s", chunk.ID, chunk.Metadata.Err.Reason)
		}
		if !chunk.Type.Known() {
			report.add(SeverityInfo, FindingUnknownChunkType, "chunk %d has type %s", chunk.ID, chunk.Type)
		}
	}

	if uint32(len(document.Revisions)) != document.DeclaredRevisions {
		report.add(SeverityWarning, FindingRevisionCount, "revision count declares %d, parsed %d", document.DeclaredRevisions, len(document.Revisions))
	}
	for index, revision := range document.Revisions {
		if revision.Delta.Err != nil {
			report.add(SeverityWarning, FindingRevisionDelta, "revision %d delta: %s", index, revision.Delta.Err.Reason)
		}
	}

	verifyIndex(&report, document)
	return report
}

// verifyIndex checks footer index entries against the parsed chunks.
// An empty index is legal (some writers never fill it) and only noted.
func verifyIndex(report *Report, document *Document) {
	index := document.Footer.Index
	if !document.Status(SectionFooter).Usable() {
		return
	}
	if len(index) == 0 {
		if len(document.Chunks) > 0 {
			report.add(SeverityInfo, FindingIndexCount, "footer index is empty; %d chunks are not indexed", len(document.Chunks))
		}
		return
	}
	if len(index) != len(document.Chunks) {
		report.add(SeverityWarning, FindingIndexCount, "footer index lists %d entries for %d chunks", len(index), len(document.Chunks))
	}
	bufferLength := uint64(len(document.Source))
	for position, entry := range index {
		if entry.Offset >= bufferLength {
			report.add(SeverityWarning, FindingIndexOutOfRange, "index entry %d (chunk %d) offset %d is past the end of the file", position, entry.ChunkID, entry.Offset)
			continue
		}
		if int(entry.ChunkID) >= len(document.Chunks) || document.Chunks[entry.ChunkID].Span.Start != entry.Offset {
			report.add(SeverityWarning, FindingIndexMismatch, "index entry %d points chunk %d at offset %d, which is not that chunk's record", position, entry.ChunkID, entry.Offset)
		}
	}
}
