package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cardtable/holdem-go/internal/storage"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger    *slog.Logger
	WSHandler http.Handler
	Storage   storage.Storage
}

// NewRouter creates the router: the websocket game endpoint plus a small
// read-only JSON surface over the hand-history journal
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := Logging(cfg.Logger)
	recoveryMiddleware := Recovery(cfg.Logger)

	// The websocket route hijacks the connection, so it stays outside the
	// logging middleware's response wrapper
	r.Handle("/ws", cfg.WSHandler).Methods(http.MethodGet)

	tableHandler := NewTableHandler(cfg.Storage, cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/table", tableHandler.GetSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/history", tableHandler.GetHistory).Methods(http.MethodGet)

	return r
}
