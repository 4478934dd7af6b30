package model

import "strings"

// Field keys identify Row fields in header mappings and cell edits.
const (
	FieldURL         = "url"
	FieldTrackName   = "track_name"
	FieldArtist      = "artist"
	FieldGenre       = "genre"
	FieldAlbum       = "album"
	FieldReleaseDate = "release_date"
	FieldDuration    = "duration"
	FieldExplicit    = "explicit"
	FieldPopularity  = "popularity"
)

// FieldKeys lists all Row field keys in canonical export order.
var FieldKeys = []string{
	FieldURL,
	FieldTrackName,
	FieldArtist,
	FieldGenre,
	FieldAlbum,
	FieldReleaseDate,
	FieldDuration,
	FieldExplicit,
	FieldPopularity,
}

// ExportHeaders maps field keys to the fixed spreadsheet header labels,
// in the same order as FieldKeys.
var ExportHeaders = map[string]string{
	FieldURL:         "Spotify URL",
	FieldTrackName:   "Track Name",
	FieldArtist:      "Artist",
	FieldGenre:       "Genre",
	FieldAlbum:       "Album",
	FieldReleaseDate: "Release Date",
	FieldDuration:    "Duration",
	FieldExplicit:    "Explicit",
	FieldPopularity:  "Popularity",
}

// Row is one table record tying a Spotify track URL to its metadata.
// All fields are plain strings; blank means unknown.
type Row struct {
	URL         string `json:"url"`
	Artist      string `json:"artist"`
	TrackName   string `json:"track_name"`
	Genre       string `json:"genre,omitempty"`
	Album       string `json:"album,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Explicit    string `json:"explicit,omitempty"`
	Popularity  string `json:"popularity,omitempty"`
}

// Get returns the value of the named field, or "" for unknown keys.
func (r Row) Get(field string) string {
	switch field {
	case FieldURL:
		return r.URL
	case FieldTrackName:
		return r.TrackName
	case FieldArtist:
		return r.Artist
	case FieldGenre:
		return r.Genre
	case FieldAlbum:
		return r.Album
	case FieldReleaseDate:
		return r.ReleaseDate
	case FieldDuration:
		return r.Duration
	case FieldExplicit:
		return r.Explicit
	case FieldPopularity:
		return r.Popularity
	}
	return ""
}

// Set assigns the named field. Unknown keys are ignored.
func (r *Row) Set(field, value string) {
	switch field {
	case FieldURL:
		r.URL = value
	case FieldTrackName:
		r.TrackName = value
	case FieldArtist:
		r.Artist = value
	case FieldGenre:
		r.Genre = value
	case FieldAlbum:
		r.Album = value
	case FieldReleaseDate:
		r.ReleaseDate = value
	case FieldDuration:
		r.Duration = value
	case FieldExplicit:
		r.Explicit = value
	case FieldPopularity:
		r.Popularity = value
	}
}

// IsBlank reports whether every field is empty after trimming.
func (r Row) IsBlank() bool {
	for _, key := range FieldKeys {
		if strings.TrimSpace(r.Get(key)) != "" {
			return false
		}
	}
	return true
}

// MergeFrom copies non-empty metadata fields from src into r, leaving the
// URL untouched. It returns the number of fields that were filled.
func (r *Row) MergeFrom(src Row) int {
	var filled int
	for _, key := range FieldKeys {
		if key == FieldURL {
			continue
		}
		value := strings.TrimSpace(src.Get(key))
		if value == "" {
			continue
		}
		r.Set(key, value)
		filled++
	}
	return filled
}

// FillRequest is the enrichment request body: a list of Spotify track URLs.
type FillRequest struct {
	URLs []string `json:"urls"`
}

// FillResponse carries one row per requested URL, in request order.
type FillResponse struct {
	Rows []Row `json:"rows"`
}
