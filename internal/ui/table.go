package ui

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
)

// minColumnWidth is the narrowest a column is truncated to.
const minColumnWidth = 8

// Table renders rows with a light box style sized to the terminal.
type Table struct {
	header  []string
	rows    [][]string
	display *DisplayContext
}

// NewTable creates a table with the given column headers.
func NewTable(display *DisplayContext, header ...string) *Table {
	if display == nil {
		display = NewDisplayContextWithWidth(DefaultTermWidth)
	}
	return &Table{header: header, display: display}
}

// AddRow adds a row to the table. Missing cells render empty.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.header))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w. The last column is truncated so the table
// fits the terminal width.
func (t *Table) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	tw.AppendHeader(header)

	last := t.lastColumnWidth()
	for _, r := range t.rows {
		row := make(table.Row, len(r))
		for i, cell := range r {
			if i == len(r)-1 && last > 0 {
				// go-pretty's WidthMax counts bytes for multi-byte text.
				cell = runewidth.Truncate(cell, last, "…")
			}
			row[i] = cell
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

// lastColumnWidth returns the room left for the last column, or 0 when it
// does not need truncating.
func (t *Table) lastColumnWidth() int {
	if len(t.header) == 0 {
		return 0
	}
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, cell := range r {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Borders: one per column plus one, and a space either side of each cell.
	used := len(widths) + 1 + 2*len(widths)
	for _, w := range widths[:len(widths)-1] {
		used += w
	}
	avail := t.display.TermWidth - used
	if avail >= widths[len(widths)-1] {
		return 0
	}
	if avail < minColumnWidth {
		return minColumnWidth
	}
	return avail
}
