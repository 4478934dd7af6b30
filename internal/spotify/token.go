package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"github.com/spotsheet/spotsheet/internal/config"
	"github.com/spotsheet/spotsheet/internal/fetcher"
)

// tokenSkew is subtracted from every expiry so a token is refreshed before
// it actually lapses mid-request.
const tokenSkew = 30 * time.Second

type cachedToken struct {
	value     string
	expiresAt time.Time
}

func (c cachedToken) valid(now time.Time) bool {
	return c.value != "" && now.Before(c.expiresAt.Add(-tokenSkew))
}

// tokenSource obtains Spotify access tokens, preferring client credentials
// and falling back to the anonymous web-player token. Each provider caches
// its token until expiry.
type tokenSource struct {
	client *fetcher.Client
	cfg    config.SpotifyConfig
	now    func() time.Time

	mu          sync.Mutex
	clientCreds cachedToken
	webPlayer   cachedToken
}

func newTokenSource(client *fetcher.Client, cfg config.SpotifyConfig) *tokenSource {
	return &tokenSource{client: client, cfg: cfg, now: time.Now}
}

// Token returns an access token from the first provider that succeeds.
func (s *tokenSource) Token(ctx context.Context, forceRefresh bool) (string, error) {
	var errs []string

	token, err := s.clientCredentialsToken(ctx, forceRefresh)
	if err == nil {
		return token, nil
	}
	errs = append(errs, "client_credentials: "+err.Error())

	token, err = s.webPlayerToken(ctx, forceRefresh)
	if err == nil {
		return token, nil
	}
	errs = append(errs, "web_player: "+err.Error())

	return "", eris.Errorf("spotify: no token provider succeeded (%s)", strings.Join(errs, " | "))
}

func (s *tokenSource) clientCredentialsToken(ctx context.Context, forceRefresh bool) (string, error) {
	clientID := strings.TrimSpace(s.cfg.ClientID)
	clientSecret := strings.TrimSpace(s.cfg.ClientSecret)
	if clientID == "" || clientSecret == "" {
		return "", eris.New("spotify: client credentials are not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !forceRefresh && s.clientCreds.valid(now) {
		return s.clientCreds.value, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AccountsURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", eris.Wrap(err, "spotify: create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(clientID, clientSecret)

	var payload struct {
		AccessToken string  `json:"access_token"`
		ExpiresIn   float64 `json:"expires_in"`
	}
	if err := s.client.DoJSON(ctx, req, &payload); err != nil {
		return "", eris.Wrap(err, "spotify: client credentials token")
	}

	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", eris.New("spotify: client credentials response had no token")
	}

	expiresAt := now.Add(5 * time.Minute)
	if payload.ExpiresIn > 0 {
		expiresAt = now.Add(time.Duration(payload.ExpiresIn * float64(time.Second)))
	}
	s.clientCreds = cachedToken{value: token, expiresAt: expiresAt}
	return token, nil
}

func (s *tokenSource) webPlayerToken(ctx context.Context, forceRefresh bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !forceRefresh && s.webPlayer.valid(now) {
		return s.webPlayer.value, nil
	}

	header := http.Header{}
	header.Set("Accept", "application/json")

	var payload struct {
		AccessToken string  `json:"accessToken"`
		ExpiryMS    float64 `json:"accessTokenExpirationTimestampMs"`
	}
	if err := s.client.GetJSON(ctx, s.cfg.WebTokenURL, header, &payload); err != nil {
		return "", eris.Wrap(err, "spotify: web player token")
	}

	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", eris.New("spotify: web player response had no token")
	}

	expiresAt := now.Add(5 * time.Minute)
	if payload.ExpiryMS > 0 {
		expiresAt = time.UnixMilli(int64(payload.ExpiryMS))
	}
	s.webPlayer = cachedToken{value: token, expiresAt: expiresAt}
	return token, nil
}
