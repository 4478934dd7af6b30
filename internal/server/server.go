// Package server exposes the enrichment backend over HTTP for the
// spreadsheet frontend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/config"
	"github.com/spotsheet/spotsheet/internal/model"
)

// Filler resolves track URLs to metadata rows. Implemented by the Spotify
// service; a fill never errors, per-URL failures yield blank rows.
type Filler interface {
	FillRows(ctx context.Context, urls []string) []model.Row
}

// Server handles enrichment HTTP requests.
type Server struct {
	cfg    config.ServerConfig
	filler Filler
}

// New creates a Server.
func New(cfg config.ServerConfig, filler Filler) *Server {
	return &Server{cfg: cfg, filler: filler}
}

// Router builds the HTTP handler: health check and the fill endpoint, with
// CORS for the configured frontend origins.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/api/fill-from-urls", s.handleFill)

	return r
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", s.cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}
