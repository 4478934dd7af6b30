// Package enrich runs the sequential per-row enrichment loop over a track
// table, against either the in-process Spotify backend or a remote
// spotsheet server.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/spotsheet/spotsheet/internal/model"
	"github.com/spotsheet/spotsheet/internal/spotify"
)

// Source resolves a list of URLs to metadata rows in request order.
type Source interface {
	Fill(ctx context.Context, urls []string) ([]model.Row, error)
}

// Local adapts the in-process Spotify service to the Source interface.
type Local struct {
	svc *spotify.Service
}

// NewLocal wraps a Spotify service.
func NewLocal(svc *spotify.Service) *Local {
	return &Local{svc: svc}
}

// Fill resolves URLs in-process.
func (l *Local) Fill(ctx context.Context, urls []string) ([]model.Row, error) {
	rows := l.svc.FillRows(ctx, urls)
	return rows, ctx.Err()
}

// Remote posts fill requests to a running spotsheet server.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a Remote source for the given server base URL.
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Fill posts the URL list to the server's fill endpoint.
func (r *Remote) Fill(ctx context.Context, urls []string) ([]model.Row, error) {
	body, err := json.Marshal(model.FillRequest{URLs: urls})
	if err != nil {
		return nil, eris.Wrap(err, "enrich: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		r.baseURL+"/api/fill-from-urls", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "enrich: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: post fill request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("enrich: server returned status %d", resp.StatusCode)
	}

	var fillResp model.FillResponse
	if err := json.NewDecoder(resp.Body).Decode(&fillResp); err != nil {
		return nil, eris.Wrap(err, "enrich: decode response")
	}
	return fillResp.Rows, nil
}
