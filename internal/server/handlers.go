package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/avelez/ohlc-data/internal/ingest"
	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/service"
	"github.com/avelez/ohlc-data/internal/store"
)

// maxUploadBytes bounds one merge request body.
const maxUploadBytes = 256 << 20

// handleMerge accepts a multipart form with "schema" and "table" fields and
// one or more "files" parts, each a CSV upload.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": fmt.Sprintf("parse multipart form: %v", err)})
		return
	}
	defer r.MultipartForm.RemoveAll()

	schema := r.FormValue("schema")
	table := r.FormValue("table")

	spec, ok := store.BaseTables[table]
	if !ok {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": fmt.Sprintf("table %q is not a merge destination", table)})
		return
	}

	parts := r.MultipartForm.File["files"]
	files := make([]service.File, 0, len(parts))
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest,
				map[string]string{"error": fmt.Sprintf("open upload %q: %v", part.Filename, err)})
			return
		}
		rows, err := ingest.ReadBars(f, spec.Kind)
		f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest,
				map[string]string{"error": fmt.Sprintf("read upload %q: %v", part.Filename, err)})
			return
		}
		files = append(files, service.File{Name: part.Filename, Rows: rows})
	}

	result, err := s.merger.Merge(r.Context(), service.MergeRequest{
		Schema: schema,
		Table:  table,
		Files:  files,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type resampleRequest struct {
	Schema     string   `json:"schema"`
	Table      string   `json:"table"`
	Kind       string   `json:"kind,omitempty"`
	Timeframes []string `json:"timeframes"`
}

// handleResample accepts a JSON body naming a 1-minute source and the target
// timeframes to rebuild.
func (s *Server) handleResample(w http.ResponseWriter, r *http.Request) {
	var req resampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": fmt.Sprintf("decode request: %v", err)})
		return
	}

	kind := model.KindStock
	if req.Kind != "" {
		var err error
		kind, err = model.ParseInstrumentKind(req.Kind)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
	}

	result, err := s.resampler.Resample(r.Context(), service.ResampleRequest{
		Schema:     req.Schema,
		Table:      req.Table,
		Kind:       kind,
		Timeframes: req.Timeframes,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
