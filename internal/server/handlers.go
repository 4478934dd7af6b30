package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFill resolves the posted URL list to metadata rows. The response
// has one row per requested URL, in request order; URLs that could not be
// enriched come back with blank metadata.
func (s *Server) handleFill(w http.ResponseWriter, r *http.Request) {
	var req model.FillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	rows := s.filler.FillRows(r.Context(), req.URLs)

	zap.L().Info("fill request served",
		zap.Int("urls", len(req.URLs)),
		zap.Int("rows", len(rows)),
	)

	writeJSON(w, http.StatusOK, model.FillResponse{Rows: rows})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response failed", zap.Error(err))
	}
}
