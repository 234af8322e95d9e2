// Package logging renders the batch analysis log: an aligned summary of
// every processed file, exclusion reasons, and per-reason counts. The CSV
// feature report stays machine-readable; this log is for humans checking
// why files dropped out.

package logging

import (
	"fmt"
	"math"
	"strings"
)

// MissingValue is the placeholder for metrics a file never produced.
const MissingValue = "-"

// Table formats aligned columns. The first column is left-aligned (labels
// and paths), the rest right-aligned (numbers).
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends one row. Short rows render missing cells as MissingValue.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table with aligned columns.
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range t.Headers {
			cell := MissingValue
			if i < len(cells) && cells[i] != "" {
				cell = cells[i]
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", widths[i], cell))
			} else {
				sb.WriteString(fmt.Sprintf("%*s", widths[i], cell))
			}
			if i < len(t.Headers)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers)
	for i, w := range widths {
		sb.WriteString(strings.Repeat("-", w))
		if i < len(widths)-1 {
			sb.WriteString("  ")
		}
	}
	sb.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// FormatSeconds formats a timing metric to millisecond precision.
// NaN and infinities render as MissingValue.
func FormatSeconds(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return MissingValue
	}
	return fmt.Sprintf("%.3f", value)
}
