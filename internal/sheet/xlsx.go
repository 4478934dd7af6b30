package sheet

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions selects the sheet to read.
type XLSXOptions struct {
	SheetName       string // sheet to read; empty means first sheet
	FallbackToFirst bool   // fall back to the first sheet when SheetName is absent
}

// ReadXLSX reads an XLSX file and returns all rows as string slices.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}

	s, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		rows = append(rows, RowStrings(row))
	}
	return rows, nil
}

// WriteXLSX writes rows to a new workbook containing a single sheet.
func WriteXLSX(path, sheetName string, rows [][]string) error {
	f := xlsx.NewFile()
	s, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "sheet: add sheet")
	}

	for _, rowData := range rows {
		row := s.AddRow()
		for _, cellData := range rowData {
			cell := row.AddCell()
			cell.SetString(cellData)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "sheet: save xlsx")
	}
	return nil
}

// OpenWorkbook opens an existing XLSX file.
func OpenWorkbook(path string) (*xlsx.File, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open xlsx")
	}
	return f, nil
}

// SaveWorkbook writes the workbook to path.
func SaveWorkbook(f *xlsx.File, path string) error {
	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "sheet: save xlsx")
	}
	return nil
}

// LookupSheet returns the named sheet, or the first sheet when fallback is
// set and the name is absent.
func LookupSheet(f *xlsx.File, name string, fallback bool) (*xlsx.Sheet, error) {
	if name != "" {
		if s, ok := f.Sheet[name]; ok {
			return s, nil
		}
		if !fallback {
			return nil, eris.Errorf("sheet: sheet %q not found", name)
		}
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("sheet: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	return LookupSheet(f, opts.SheetName, opts.SheetName == "" || opts.FallbackToFirst)
}

// RowStrings converts a sheet row into its string cell values.
func RowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// SetRowValue writes value into the cell at idx, extending the row with
// empty cells as needed.
func SetRowValue(row *xlsx.Row, idx int, value string) {
	for len(row.Cells) <= idx {
		row.AddCell()
	}
	row.Cells[idx].SetString(value)
}

// EnsureColumn returns the index of the column whose header matches name,
// appending a new header cell when the column does not exist yet.
func EnsureColumn(s *xlsx.Sheet, name string) int {
	if len(s.Rows) == 0 {
		s.AddRow()
	}
	header := s.Rows[0]
	for i, cell := range header.Cells {
		if cell.String() == name {
			return i
		}
	}
	cell := header.AddCell()
	cell.SetString(name)
	return len(header.Cells) - 1
}

// FindColumn returns the index of the column whose header equals name, or
// -1 when no header matches. Matching is exact and case-sensitive.
func FindColumn(s *xlsx.Sheet, name string) int {
	if len(s.Rows) == 0 {
		return -1
	}
	for i, cell := range s.Rows[0].Cells {
		if cell.String() == name {
			return i
		}
	}
	return -1
}
