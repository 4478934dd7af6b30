package spotify

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

var byOnSpotifyRe = regexp.MustCompile(`(?i)\bby\s+(.+?)\s+on\s+Spotify\b`)

// fetchEmbed scrapes the public embed page for a track and returns the
// track name and artist. Used when the Web API path yields nothing.
func (s *Service) fetchEmbed(ctx context.Context, trackID string) (string, string, error) {
	body, err := s.client.Get(ctx, s.cfg.EmbedBaseURL+trackID)
	if err != nil {
		return "", "", eris.Wrap(err, "spotify: fetch embed page")
	}
	defer func() { _ = body.Close() }()

	return parseEmbedHTML(body)
}

// parseEmbedHTML extracts track name and artist from an embed page.
// The track name comes from og:title; the artist from the og:description
// ("<track> by <artist> on Spotify", or a "·"-delimited summary), with the
// page's artist links as a last resort.
func parseEmbedHTML(r io.Reader) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", eris.Wrap(err, "spotify: parse embed html")
	}

	trackName := metaContent(doc, "og:title")
	description := metaContent(doc, "og:description")

	var artist string
	if description != "" {
		if m := byOnSpotifyRe.FindStringSubmatch(description); m != nil {
			artist = strings.TrimSpace(m[1])
		} else {
			var parts []string
			for _, part := range strings.Split(description, "·") {
				if part = strings.TrimSpace(part); part != "" {
					parts = append(parts, part)
				}
			}
			switch {
			case len(parts) >= 2:
				artist = parts[1]
			case len(parts) == 1 && trackName != "" && !strings.EqualFold(parts[0], trackName):
				artist = parts[0]
			}
		}
	}

	if artist == "" {
		var names []string
		doc.Find(`a[href*="/artist/"]`).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				names = append(names, text)
			}
		})
		artist = joinDeduped(names)
	}

	return trackName, artist, nil
}

func metaContent(doc *goquery.Document, property string) string {
	value, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(value)
}
