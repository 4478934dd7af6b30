// Package sheet reads and writes the CSV and XLSX files the track table
// round-trips through, and maps spreadsheet headers onto row fields.
package sheet

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/spotsheet/spotsheet/internal/model"
)

// AliasMap maps a header cell value to a row field key. Lookups are
// case-sensitive; a header that resolves to no field is ignored on import.
type AliasMap map[string]string

// DefaultAliases returns the built-in header mapping: the canonical export
// headers plus the spellings commonly seen in hand-maintained sheets.
func DefaultAliases() AliasMap {
	m := AliasMap{}
	for _, key := range model.FieldKeys {
		m[model.ExportHeaders[key]] = key
	}
	for alias, key := range map[string]string{
		"URL":          model.FieldURL,
		"Link":         model.FieldURL,
		"Spotify Link": model.FieldURL,
		"Track URL":    model.FieldURL,
		"Track":        model.FieldTrackName,
		"Title":        model.FieldTrackName,
		"Song":         model.FieldTrackName,
		"Name":         model.FieldTrackName,
		"Artists":      model.FieldArtist,
		"Artist(s)":    model.FieldArtist,
		"Artist Name":  model.FieldArtist,
		"Genres":       model.FieldGenre,
		"Album Name":   model.FieldAlbum,
		"Released":     model.FieldReleaseDate,
		"Release":      model.FieldReleaseDate,
		"Date":         model.FieldReleaseDate,
		"Length":       model.FieldDuration,
		"Time":         model.FieldDuration,
	} {
		m[alias] = key
	}
	return m
}

// LoadAliases merges a YAML alias file over the defaults. The file maps
// field keys to additional header spellings:
//
//	track_name:
//	  - Titel
//	  - Song Title
func LoadAliases(path string) (AliasMap, error) {
	aliases := DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: read alias file")
	}

	var extra map[string][]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, eris.Wrap(err, "sheet: parse alias file")
	}

	known := make(map[string]bool, len(model.FieldKeys))
	for _, key := range model.FieldKeys {
		known[key] = true
	}

	for key, headers := range extra {
		if !known[key] {
			return nil, eris.Errorf("sheet: alias file references unknown field %q", key)
		}
		for _, h := range headers {
			h = strings.TrimSpace(h)
			if h != "" {
				aliases[h] = key
			}
		}
	}

	return aliases, nil
}

// ExportHeaderRow returns the fixed header row used by every export.
func ExportHeaderRow() []string {
	headers := make([]string, len(model.FieldKeys))
	for i, key := range model.FieldKeys {
		headers[i] = model.ExportHeaders[key]
	}
	return headers
}

// MapColumns resolves a header row into column index → field key. Unmapped
// columns are absent from the result.
func (m AliasMap) MapColumns(header []string) map[int]string {
	cols := make(map[int]string)
	claimed := make(map[string]bool)
	for i, cell := range header {
		key, ok := m[strings.TrimSpace(cell)]
		if !ok || claimed[key] {
			continue
		}
		cols[i] = key
		claimed[key] = true
	}
	return cols
}
