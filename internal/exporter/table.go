package exporter

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment of a table column
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableWriter renders rows as a plain-text table padded by display width, so
// wide characters in names line up in a terminal.
type TableWriter struct {
	headers []string
	align   []Alignment
	rows    [][]string
}

// NewTableWriter creates a table with the given headers, all left-aligned
func NewTableWriter(headers ...string) *TableWriter {
	return &TableWriter{
		headers: headers,
		align:   make([]Alignment, len(headers)),
	}
}

// SetAlign sets the alignment of column i
func (t *TableWriter) SetAlign(i int, a Alignment) *TableWriter {
	if i >= 0 && i < len(t.align) {
		t.align[i] = a
	}
	return t
}

// Append adds a row. Missing cells render blank; extra cells are dropped.
func (t *TableWriter) Append(row ...string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render writes the table to w
func (t *TableWriter) Render(w io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	t.writeRow(&sb, t.headers, widths)
	for i, width := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", width))
	}
	sb.WriteString("\n")
	for _, row := range t.rows {
		t.writeRow(&sb, row, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *TableWriter) writeRow(sb *strings.Builder, row []string, widths []int) {
	var line strings.Builder
	for i, cell := range row {
		if i > 0 {
			line.WriteString("  ")
		}
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		if t.align[i] == AlignRight {
			line.WriteString(pad + cell)
		} else {
			line.WriteString(cell + pad)
		}
	}
	sb.WriteString(strings.TrimRight(line.String(), " "))
	sb.WriteString("\n")
}
