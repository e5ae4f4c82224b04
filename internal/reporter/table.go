package reporter

import (
	"fmt"
	"strings"
)

// maxCellWidth caps a column at a readable width; longer values wrap
// onto continuation lines instead of being truncated.
const maxCellWidth = 40

const columnGap = "  "

// writeTable renders one fixed-width table: header row, dash rule,
// then the data rows. A cell wider than its column wraps within the
// column, padding the other cells of that logical row with blanks.
func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)

	writeLine(b, headers, widths)
	total := len(columnGap) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total))
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(b, row, widths)
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			w := len(cell)
			if w > maxCellWidth {
				w = maxCellWidth
			}
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// writeRow emits one logical row as one or more physical lines, one
// line per wrap level across all cells.
func writeRow(b *strings.Builder, row []string, widths []int) {
	wrapped := make([][]string, len(widths))
	depth := 1
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		wrapped[i] = wrapCell(cell, widths[i])
		if len(wrapped[i]) > depth {
			depth = len(wrapped[i])
		}
	}

	for line := 0; line < depth; line++ {
		parts := make([]string, len(widths))
		for i := range widths {
			if line < len(wrapped[i]) {
				parts[i] = wrapped[i][line]
			}
		}
		writeLine(b, parts, widths)
	}
}

func writeLine(b *strings.Builder, cells []string, widths []int) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == len(widths)-1 {
			// No trailing padding on the last column.
			b.WriteString(cell)
		} else {
			fmt.Fprintf(b, "%-*s%s", w, cell, columnGap)
		}
	}
	b.WriteString("\n")
}

// wrapCell splits value into chunks of at most width characters,
// breaking at spaces where possible.
func wrapCell(value string, width int) []string {
	if width <= 0 || len(value) <= width {
		return []string{value}
	}

	var lines []string
	remaining := value
	for len(remaining) > width {
		cut := strings.LastIndex(remaining[:width+1], " ")
		if cut <= 0 {
			cut = width
		}
		lines = append(lines, strings.TrimRight(remaining[:cut], " "))
		remaining = strings.TrimLeft(remaining[cut:], " ")
	}
	if remaining != "" {
		lines = append(lines, remaining)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
