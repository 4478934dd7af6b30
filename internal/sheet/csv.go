package sheet

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// ReadCSV reads all records from r. Quoting is lax and rows may have
// varying field counts, matching what spreadsheet tools actually emit.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "sheet: read csv")
	}
	return records, nil
}

// WriteCSV writes the records to w.
func WriteCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return eris.Wrap(err, "sheet: write csv")
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return eris.Wrap(err, "sheet: flush csv")
	}
	return nil
}
