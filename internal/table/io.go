package table

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/spotsheet/spotsheet/internal/model"
	"github.com/spotsheet/spotsheet/internal/sheet"
)

// Import reads a CSV or XLSX file into a new table, dispatching on the file
// extension. XLSX imports read the "Tracks" sheet when present, else the
// first sheet.
func Import(path string, aliases sheet.AliasMap) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "table: open csv")
		}
		defer func() { _ = f.Close() }()
		return ImportCSV(f, aliases)
	case ".xlsx":
		return ImportXLSX(path, aliases)
	default:
		return nil, eris.Errorf("table: unsupported file type %q", filepath.Ext(path))
	}
}

// ImportCSV reads CSV records into a new table.
func ImportCSV(r io.Reader, aliases sheet.AliasMap) (*Table, error) {
	records, err := sheet.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return fromRecords(records, aliases), nil
}

// ImportXLSX reads the tracks sheet of an XLSX workbook into a new table.
func ImportXLSX(path string, aliases sheet.AliasMap) (*Table, error) {
	records, err := sheet.ReadXLSX(path, sheet.XLSXOptions{
		SheetName:       SheetName,
		FallbackToFirst: true,
	})
	if err != nil {
		return nil, err
	}
	return fromRecords(records, aliases), nil
}

// fromRecords maps header-aliased records onto rows. Values are trimmed and
// rows whose every recognized field is blank are dropped.
func fromRecords(records [][]string, aliases sheet.AliasMap) *Table {
	t := New()
	if len(records) == 0 {
		return t
	}

	cols := aliases.MapColumns(records[0])
	for _, record := range records[1:] {
		var row model.Row
		for i, key := range cols {
			if i >= len(record) {
				continue
			}
			row.Set(key, strings.TrimSpace(record[i]))
		}
		if row.IsBlank() {
			continue
		}
		t.Append(row)
	}
	return t
}

// Export writes the table to a CSV or XLSX file, dispatching on extension.
func (t *Table) Export(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrap(err, "table: create csv")
		}
		defer func() { _ = f.Close() }()
		return t.ExportCSV(f)
	case ".xlsx":
		return t.ExportXLSX(path)
	default:
		return eris.Errorf("table: unsupported file type %q", filepath.Ext(path))
	}
}

// ExportCSV writes all rows with the fixed header row.
func (t *Table) ExportCSV(w io.Writer) error {
	return sheet.WriteCSV(w, t.records())
}

// ExportXLSX writes all rows to a workbook with a single "Tracks" sheet.
func (t *Table) ExportXLSX(path string) error {
	return sheet.WriteXLSX(path, SheetName, t.records())
}

func (t *Table) records() [][]string {
	records := make([][]string, 0, len(t.rows)+1)
	records = append(records, sheet.ExportHeaderRow())
	for _, row := range t.rows {
		record := make([]string, len(model.FieldKeys))
		for i, key := range model.FieldKeys {
			record[i] = row.Get(key)
		}
		records = append(records, record)
	}
	return records
}
