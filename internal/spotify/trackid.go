package spotify

import (
	"net/url"
	"regexp"
	"strings"
)

var trackURLRe = regexp.MustCompile(`open\.spotify\.com/(?:intl-[a-z]{2}/)?(?:embed/)?track/([A-Za-z0-9]+)`)

// TrackIDFromURL extracts the Spotify track ID from a share URL, an embed
// URL, or a spotify:track: URI. It returns "" when no ID can be found.
func TrackIDFromURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "spotify:track:") {
		parts := strings.Split(cleaned, ":")
		return parts[len(parts)-1]
	}

	if m := trackURLRe.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}

	// Last resort: any URL whose path contains a /track/<id> segment.
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return ""
	}
	segments := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
	for i, seg := range segments {
		if seg == "track" && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}
