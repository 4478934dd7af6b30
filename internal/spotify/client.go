// Package spotify enriches track URLs with metadata from the Spotify Web
// API, falling back to scraping the public embed page when the API yields
// nothing.
package spotify

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/config"
	"github.com/spotsheet/spotsheet/internal/fetcher"
	"github.com/spotsheet/spotsheet/internal/model"
)

// Service fetches track metadata. Safe for reuse across runs; the artist
// genre cache is scoped to a single FillRows call.
type Service struct {
	client *fetcher.Client
	cfg    config.SpotifyConfig
	tokens *tokenSource
}

// New creates a Service with a rate-limited fetcher for the Spotify hosts.
func New(cfg config.SpotifyConfig) *Service {
	client := fetcher.New(fetcher.Options{
		UserAgent:    cfg.UserAgent,
		Timeout:      time.Duration(cfg.TimeoutSecs) * time.Second,
		RateLimiters: fetcher.SpotifyRateLimiters(cfg.RequestsPerSec),
	})
	return NewWithClient(cfg, client)
}

// NewWithClient creates a Service around an existing fetcher client.
func NewWithClient(cfg config.SpotifyConfig, client *fetcher.Client) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		tokens: newTokenSource(client, cfg),
	}
}

type artistPayload struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type trackPayload struct {
	Name       string          `json:"name"`
	DurationMS int             `json:"duration_ms"`
	Explicit   *bool           `json:"explicit"`
	Popularity *int            `json:"popularity"`
	Artists    []artistPayload `json:"artists"`
	Album      struct {
		Name        string `json:"name"`
		ReleaseDate string `json:"release_date"`
	} `json:"album"`
}

// apiGet performs an authorized Web API request. A 401 response forces one
// token refresh and a single re-request.
func (s *Service) apiGet(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		token, err := s.tokens.Token(ctx, attempt == 1)
		if err != nil {
			return err
		}

		header := http.Header{}
		header.Set("Authorization", "Bearer "+token)

		err = s.client.GetJSON(ctx, rawURL, header, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var statusErr *fetcher.StatusError
		if attempt == 0 && eris.As(err, &statusErr) && statusErr.Code == http.StatusUnauthorized {
			continue
		}
		break
	}
	return eris.Wrap(lastErr, "spotify: api get")
}

// fetchMetadata resolves one URL to a metadata row. genreCache maps artist
// IDs to their genres for the duration of a run.
func (s *Service) fetchMetadata(ctx context.Context, rawURL string, genreCache map[string][]string) model.Row {
	row := model.Row{URL: rawURL}

	trackID := TrackIDFromURL(rawURL)
	if trackID == "" {
		return row
	}

	if err := s.fillFromAPI(ctx, trackID, &row, genreCache); err == nil {
		if row.TrackName != "" || row.Artist != "" || row.Genre != "" {
			return row
		}
	} else {
		zap.L().Debug("spotify api lookup failed, trying embed page",
			zap.String("track_id", trackID),
			zap.Error(err),
		)
	}

	track, artist, err := s.fetchEmbed(ctx, trackID)
	if err != nil {
		zap.L().Warn("embed page fallback failed",
			zap.String("track_id", trackID),
			zap.Error(err),
		)
		return row
	}
	row.TrackName = track
	row.Artist = artist
	return row
}

func (s *Service) fillFromAPI(ctx context.Context, trackID string, row *model.Row, genreCache map[string][]string) error {
	var track trackPayload
	if err := s.apiGet(ctx, s.cfg.APIBaseURL+"/tracks/"+trackID, &track); err != nil {
		return err
	}

	var artists, genres []string
	for _, artist := range track.Artists {
		if artist.Name != "" {
			artists = append(artists, artist.Name)
		}
		if artist.ID == "" {
			continue
		}
		if _, ok := genreCache[artist.ID]; !ok {
			var payload artistPayload
			if err := s.apiGet(ctx, s.cfg.APIBaseURL+"/artists/"+artist.ID, &payload); err != nil {
				zap.L().Debug("artist genre lookup failed",
					zap.String("artist_id", artist.ID),
					zap.Error(err),
				)
				genreCache[artist.ID] = nil
			} else {
				genreCache[artist.ID] = dedupeStrings(payload.Genres)
			}
		}
		genres = append(genres, genreCache[artist.ID]...)
	}

	row.TrackName = track.Name
	row.Artist = joinDeduped(artists)
	row.Genre = joinDeduped(genres)
	row.Album = track.Album.Name
	row.ReleaseDate = track.Album.ReleaseDate
	row.Duration = formatDuration(track.DurationMS)
	if track.Explicit != nil {
		if *track.Explicit {
			row.Explicit = "Yes"
		} else {
			row.Explicit = "No"
		}
	}
	if track.Popularity != nil {
		row.Popularity = strconv.Itoa(*track.Popularity)
	}
	return nil
}

// FillRows resolves each URL to a metadata row, strictly in order and one
// at a time. Blank URLs produce blank rows; per-URL failures produce rows
// with empty metadata and never abort the batch.
func (s *Service) FillRows(ctx context.Context, urls []string) []model.Row {
	genreCache := make(map[string][]string)
	rows := make([]model.Row, 0, len(urls))

	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if url == "" {
			rows = append(rows, model.Row{})
			continue
		}
		if ctx.Err() != nil {
			rows = append(rows, model.Row{URL: url})
			continue
		}
		rows = append(rows, s.fetchMetadata(ctx, url, genreCache))
	}

	return rows
}
