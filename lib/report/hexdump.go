// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strings"
)

const hexRowWidth = 16

// HexDump writes data as rows of 16 bytes: the address, the bytes in
// hex, and their printable ASCII form. offset is the address of
// data[0]. At most maxBytes are shown (all of them when maxBytes is
// zero or less), followed by a line counting the hidden remainder.
func HexDump(w io.Writer, data []byte, offset uint64, maxBytes int) error {
	shown := data
	if maxBytes > 0 && len(shown) > maxBytes {
		shown = shown[:maxBytes]
	}

	var builder strings.Builder
	for start := 0; start < len(shown); start += hexRowWidth {
		row := shown[start:min(start+hexRowWidth, len(shown))]
		fmt.Fprintf(&builder, "0x%08x  ", offset+uint64(start))
		for index := 0; index < hexRowWidth; index++ {
			if index < len(row) {
				fmt.Fprintf(&builder, "%02x ", row[index])
			} else {
				builder.WriteString("   ")
			}
			if index == hexRowWidth/2-1 {
				builder.WriteByte(' ')
			}
		}
		builder.WriteString(" |")
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				builder.WriteByte(b)
			} else {
				builder.WriteByte('.')
			}
		}
		builder.WriteString("|\n")
	}
	if hidden := len(data) - len(shown); hidden > 0 {
		fmt.Fprintf(&builder, "--- %d more bytes hidden ---\n", hidden)
	}

	_, err := io.WriteString(w, builder.String())
	return err
}
