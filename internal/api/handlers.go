package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/storage"
)

// errorResponse is the JSON error envelope
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// TableHandler serves read-only observability views from the journal
type TableHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewTableHandler creates the observability handler
func NewTableHandler(store storage.Storage, logger *slog.Logger) *TableHandler {
	return &TableHandler{storage: store, logger: logger}
}

// GetSnapshot returns the latest public table snapshot
func (h *TableHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.storage.GetSnapshot(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "no table snapshot recorded yet")
			return
		}
		h.logger.Error("snapshot lookup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// GetHistory returns the journaled public event stream
func (h *TableHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.storage.ListEvents(r.Context())
	if err != nil {
		h.logger.Error("history lookup failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
