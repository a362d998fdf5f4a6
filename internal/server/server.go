// Package server exposes the merge and resample workflows over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/resample"
	"github.com/avelez/ohlc-data/internal/service"
	"github.com/avelez/ohlc-data/internal/store"
)

// Server holds the handler dependencies.
type Server struct {
	store     *store.Store
	merger    *service.Merger
	resampler *service.Resampler
	logger    *slog.Logger
}

// New creates a Server.
func New(st *store.Store, merger *service.Merger, resampler *service.Resampler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, merger: merger, resampler: resampler, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/schemas", s.handleSchemas)
	mux.HandleFunc("GET /api/tables/{schema}", s.handleTables)
	mux.HandleFunc("GET /api/base_tables/{schema}", s.handleBaseTables)
	mux.HandleFunc("POST /api/merge", s.handleMerge)
	mux.HandleFunc("POST /api/resample", s.handleResample)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}{Status: "healthy", Database: "connected"}

	if err := s.store.Ping(r.Context()); err != nil {
		health.Status = "unhealthy"
		health.Database = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, health)
		return
	}
	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := s.store.ListSchemas(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if schemas == nil {
		schemas = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"schemas": schemas})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	schema := r.PathValue("schema")
	if err := store.ValidateIdentifier(schema); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	tables, err := s.store.ListTables(r.Context(), schema, "_"+model.SourceTag)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"schema": schema, "tables": tables})
}

func (s *Server) handleBaseTables(w http.ResponseWriter, r *http.Request) {
	schema := r.PathValue("schema")
	if err := store.ValidateIdentifier(schema); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	status, err := s.store.BaseTableStatus(r.Context(), schema)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schema": schema, "base_tables": status})
}

// writeError maps domain errors onto status codes. Anything the caller could
// fix is a 400; the rest is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var ve *service.ValidationError
	var fe *model.FieldError
	switch {
	case errors.As(err, &ve), errors.As(err, &fe),
		errors.Is(err, resample.ErrUnsupportedTimeframe):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
