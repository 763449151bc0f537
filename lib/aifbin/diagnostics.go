// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package aifbin

import "sort"

// Region is the byte range one section occupies in the decoded buffer.
type Region struct {
	Section Section
	Range   ByteRange
	State   SectionState
}

// SectionRange returns the bytes that section occupies, as far as
// decoding got. For a truncated section the range ends where parsing
// stopped (or at the end of the buffer when the cut is inside a length
// prefix). It reports false for absent and out-of-range sections.
func (d *Document) SectionRange(section Section) (ByteRange, bool) {
	if section == SectionHeader {
		return ByteRange{Start: 0, End: HeaderSize}, true
	}
	status := d.Status(section)
	if !status.Usable() {
		return ByteRange{}, false
	}
	start := status.Offset
	end := uint64(len(d.Source))

	blobEnd := func(payload []byte) uint64 {
		if status.State == SectionTruncated {
			return end
		}
		return start + blobLengthSize + uint64(len(payload))
	}

	switch section {
	case SectionMetadata:
		end = blobEnd(d.RawMetadata)
	case SectionOriginalRaw:
		end = blobEnd(d.OriginalRaw)
	case SectionChunks:
		if status.State == SectionPresent {
			end = start + chunkCountSize
			if count := len(d.Chunks); count > 0 {
				end = d.Chunks[count-1].Span.End
			}
		}
	case SectionRevisions:
		if status.State == SectionPresent {
			end = start + revisionCountSize
			if count := len(d.Revisions); count > 0 {
				end = d.Revisions[count-1].Span.End
			}
		}
	case SectionFooter:
		if d.Footer.ChecksumPresent {
			end = d.Footer.ChecksumOffset + checksumSize
		}
	}
	return ByteRange{Start: start, End: end}, true
}

// Layout returns the regions of every usable section ordered by start
// offset. Gaps between regions, and regions that overlap, indicate a
// writer that did not lay sections out contiguously.
func (d *Document) Layout() []Region {
	regions := []Region{{
		Section: SectionHeader,
		Range:   ByteRange{Start: 0, End: HeaderSize},
		State:   SectionPresent,
	}}
	for _, section := range AllSections {
		if byteRange, ok := d.SectionRange(section); ok {
			regions = append(regions, Region{Section: section, Range: byteRange, State: d.Status(section).State})
		}
	}
	sort.SliceStable(regions, func(a, b int) bool {
		return regions[a].Range.Start < regions[b].Range.Start
	})
	return regions
}

// UnclaimedBytes returns the ranges of the buffer covered by no region
// in layout. A contiguous, well-formed container has none.
func UnclaimedBytes(layout []Region, bufferLength uint64) []ByteRange {
	var gaps []ByteRange
	var cursor uint64
	for _, region := range layout {
		if region.Range.Start > cursor {
			gaps = append(gaps, ByteRange{Start: cursor, End: min(region.Range.Start, bufferLength)})
		}
		cursor = max(cursor, region.Range.End)
	}
	if cursor < bufferLength {
		gaps = append(gaps, ByteRange{Start: cursor, End: bufferLength})
	}
	return gaps
}
