// Package fetcher provides a rate-limited HTTP client for the Spotify
// endpoints the enrichment backend talks to.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Options configures the HTTP client.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	RateLimiters map[string]*rate.Limiter
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d from %s", e.Code, e.URL)
}

// Client wraps net/http with per-host rate limiting. Every request waits for
// the host's limiter before being sent; requests are never retried, so a
// failing URL costs exactly one attempt.
type Client struct {
	client   *http.Client
	opts     Options
	limiters map[string]*rate.Limiter
}

// SpotifyRateLimiters returns per-host limiters for the Spotify endpoints.
// rps controls the pacing between successive page and API fetches.
func SpotifyRateLimiters(rps float64) map[string]*rate.Limiter {
	if rps <= 0 {
		rps = 5
	}
	return map[string]*rate.Limiter{
		"open.spotify.com":     rate.NewLimiter(rate.Limit(rps), 1),
		"api.spotify.com":      rate.NewLimiter(rate.Limit(rps), 1),
		"accounts.spotify.com": rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "spotsheet/1.0"
	}
	limiters := make(map[string]*rate.Limiter)
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: limiters,
	}
}

func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rate.NewLimiter(20, 20)
	}
	if lim, ok := c.limiters[u.Hostname()]; ok {
		return lim
	}
	return rate.NewLimiter(20, 20)
}

// Do waits for the host's rate limiter, applies the default User-Agent if
// the request carries none, and performs a single attempt.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	lim := c.limiterFor(req.URL.String())
	if err := lim.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "fetcher: rate limiter wait")
	}

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}

	resp, err := c.client.Do(req.Clone(ctx))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: request")
	}
	return resp, nil
}

// Get fetches the URL and returns the response body. Non-2xx statuses are
// reported as a StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create request")
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, eris.Wrap(&StatusError{Code: resp.StatusCode, URL: rawURL}, "fetcher: get")
	}

	return resp.Body, nil
}

// DoJSON performs the request and decodes a JSON response body into out.
// Non-2xx statuses are reported as a StatusError with the body discarded.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return eris.Wrap(&StatusError{Code: resp.StatusCode, URL: req.URL.String()}, "fetcher: json request")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrap(err, "fetcher: decode json")
	}
	return nil
}

// GetJSON fetches the URL with the given extra headers and decodes the JSON
// response into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "fetcher: create request")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return c.DoJSON(ctx, req, out)
}
