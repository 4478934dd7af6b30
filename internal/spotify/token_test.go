package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotsheet/spotsheet/internal/config"
	"github.com/spotsheet/spotsheet/internal/fetcher"
)

func TestClientCredentialsTokenCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	defer srv.Close()

	src := newTokenSource(fetcher.New(fetcher.Options{}), config.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AccountsURL:  srv.URL,
	})

	now := time.Now()
	src.now = func() time.Time { return now }

	tok, err := src.Token(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, 1, calls)

	// Second call within the expiry window is served from cache.
	_, err = src.Token(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Advancing past expiry minus skew triggers a refetch.
	now = now.Add(3600*time.Second - 10*time.Second)
	_, err = src.Token(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokenForceRefreshBypassesCache(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	}))
	defer srv.Close()

	src := newTokenSource(fetcher.New(fetcher.Options{}), config.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AccountsURL:  srv.URL,
	})

	_, err := src.Token(context.Background(), false)
	require.NoError(t, err)
	_, err = src.Token(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTokenFallsBackToWebPlayer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken":                      "web-tok",
			"accessTokenExpirationTimestampMs": float64(time.Now().Add(time.Hour).UnixMilli()),
		})
	}))
	defer srv.Close()

	// No client credentials configured; the web player provider wins.
	src := newTokenSource(fetcher.New(fetcher.Options{}), config.SpotifyConfig{
		WebTokenURL: srv.URL,
	})

	tok, err := src.Token(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "web-tok", tok)
}

func TestTokenAllProvidersFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := newTokenSource(fetcher.New(fetcher.Options{}), config.SpotifyConfig{
		WebTokenURL: srv.URL,
	})

	_, err := src.Token(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token provider succeeded")
	assert.Contains(t, err.Error(), "client_credentials")
	assert.Contains(t, err.Error(), "web_player")
}

func TestTokenEmptyResponseRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": ""})
	}))
	defer srv.Close()

	src := newTokenSource(fetcher.New(fetcher.Options{}), config.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		AccountsURL:  srv.URL,
	})

	_, err := src.clientCredentialsToken(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}
