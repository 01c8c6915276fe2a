package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const maxRecordBytes = 10 << 20

type binMetadata struct {
	ID        string `json:"id,omitempty"`
	ParentID  string `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Private   bool   `json:"private"`
}

type binResponse struct {
	Record   json.RawMessage `json:"record,omitempty"`
	Metadata binMetadata     `json:"metadata"`
	Message  string          `json:"message,omitempty"`
}

// Health check

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		jsonError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Bin handlers

func (s *Server) readRecord(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordBytes))
	if err != nil {
		jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return nil, false
	}
	if len(body) == 0 {
		jsonError(w, "Bin cannot be blank", http.StatusBadRequest)
		return nil, false
	}
	if !json.Valid(body) {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (s *Server) createBinHandler(w http.ResponseWriter, r *http.Request) {
	record, ok := s.readRecord(w, r)
	if !ok {
		return
	}

	bin, err := s.db.CreateBin(r.Context(), record)
	if err != nil {
		s.log.WithError(err).Errorw("Failed to create bin")
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.metrics.binWrites.WithLabelValues("create").Inc()

	jsonResponse(w, binResponse{
		Record:   bin.Record,
		Metadata: binMetadata{ID: bin.ID, CreatedAt: formatTime(bin.CreatedAt), Private: true},
	}, http.StatusOK)
}

func (s *Server) getBinHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bin, err := s.db.GetBin(r.Context(), id)
	if err != nil {
		s.log.WithError(err).Errorw("Failed to get bin", "bin", id)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if bin == nil {
		jsonError(w, "Bin not found or it doesn't belong to your account", http.StatusNotFound)
		return
	}

	jsonResponse(w, binResponse{
		Record:   bin.Record,
		Metadata: binMetadata{ID: bin.ID, CreatedAt: formatTime(bin.CreatedAt), Private: true},
	}, http.StatusOK)
}

func (s *Server) putBinHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, ok := s.readRecord(w, r)
	if !ok {
		return
	}

	bin, err := s.db.PutBin(r.Context(), id, record)
	if err != nil {
		s.log.WithError(err).Errorw("Failed to update bin", "bin", id)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if bin == nil {
		jsonError(w, "Bin not found or it doesn't belong to your account", http.StatusNotFound)
		return
	}
	s.metrics.binWrites.WithLabelValues("update").Inc()

	jsonResponse(w, binResponse{
		Record:   bin.Record,
		Metadata: binMetadata{ParentID: bin.ID, Private: true},
	}, http.StatusOK)
}

func (s *Server) deleteBinHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := s.db.DeleteBin(r.Context(), id)
	if err != nil {
		s.log.WithError(err).Errorw("Failed to delete bin", "bin", id)
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !removed {
		jsonError(w, "Bin not found or it doesn't belong to your account", http.StatusNotFound)
		return
	}
	s.metrics.binWrites.WithLabelValues("delete").Inc()

	jsonResponse(w, binResponse{
		Metadata: binMetadata{ID: id},
		Message:  "Bin deleted successfully",
	}, http.StatusOK)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

