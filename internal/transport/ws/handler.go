package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/services/table"
	"github.com/cardtable/holdem-go/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the table protocol carries no credentials; any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades HTTP requests to websocket sessions
type Handler struct {
	actor       *table.Actor
	broadcaster *broadcast.Broadcaster
	logger      *slog.Logger
}

// NewHandler creates the websocket upgrade handler
func NewHandler(actor *table.Actor, broadcaster *broadcast.Broadcaster, logger *slog.Logger) *Handler {
	return &Handler{
		actor:       actor,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// ServeHTTP upgrades the connection and runs its session until it ends.
// The handler goroutine IS the session goroutine; shutdown reaches it
// through the broadcaster closing, not through the request context, which
// is unreliable once the connection is hijacked.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	conn := NewConn(wsConn, h.logger)
	sess := session.New(h.actor, h.broadcaster, conn, h.logger)
	sess.Run(context.Background())
}
