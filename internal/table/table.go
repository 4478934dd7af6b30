// Package table holds the in-memory track table: an ordered sequence of
// rows tying Spotify URLs to their metadata, with paste, edit, import, and
// export operations.
package table

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/spotsheet/spotsheet/internal/model"
)

// SheetName is the workbook sheet the table imports from and exports to.
const SheetName = "Tracks"

// Table is an ordered, in-memory sequence of rows. Row order is insertion
// order and is significant. The zero value is usable.
type Table struct {
	rows []model.Row
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// LoadText replaces the table with one URL-only row per non-empty line of
// pasted text. It returns the number of rows loaded.
func (t *Table) LoadText(text string) int {
	t.rows = nil
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t.rows = append(t.rows, model.Row{URL: line})
	}
	return len(t.rows)
}

// Append adds a row at the end of the table.
func (t *Table) Append(r model.Row) {
	t.rows = append(t.rows, r)
}

// RemoveAt deletes the row at index i.
func (t *Table) RemoveAt(i int) error {
	if i < 0 || i >= len(t.rows) {
		return eris.Errorf("table: row index %d out of range (%d rows)", i, len(t.rows))
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// SetCell assigns one field of the row at index i.
func (t *Table) SetCell(i int, field, value string) error {
	if i < 0 || i >= len(t.rows) {
		return eris.Errorf("table: row index %d out of range (%d rows)", i, len(t.rows))
	}
	t.rows[i].Set(field, value)
	return nil
}

// Row returns a copy of the row at index i.
func (t *Table) Row(i int) (model.Row, error) {
	if i < 0 || i >= len(t.rows) {
		return model.Row{}, eris.Errorf("table: row index %d out of range (%d rows)", i, len(t.rows))
	}
	return t.rows[i], nil
}

// Replace overwrites the row at index i.
func (t *Table) Replace(i int, r model.Row) error {
	if i < 0 || i >= len(t.rows) {
		return eris.Errorf("table: row index %d out of range (%d rows)", i, len(t.rows))
	}
	t.rows[i] = r
	return nil
}

// Clear removes all rows.
func (t *Table) Clear() {
	t.rows = nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of all rows in order.
func (t *Table) Rows() []model.Row {
	out := make([]model.Row, len(t.rows))
	copy(out, t.rows)
	return out
}
