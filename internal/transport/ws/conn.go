package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/session"
)

const (
	writeWait = 10 * time.Second

	// inboundBufferSize bounds the read pump's channel
	inboundBufferSize = 16
)

// Conn adapts a gorilla websocket connection to the session.Conn duplex
// stream. A dedicated read pump feeds the inbound channel so the session
// can select over reads and broadcast events.
type Conn struct {
	ws      *websocket.Conn
	inbound chan []byte
	logger  *slog.Logger
}

var _ session.Conn = (*Conn)(nil)

// NewConn wraps an upgraded websocket connection and starts its read pump
func NewConn(wsConn *websocket.Conn, logger *slog.Logger) *Conn {
	c := &Conn{
		ws:      wsConn,
		inbound: make(chan []byte, inboundBufferSize),
		logger:  logger.With(slog.String("component", "ws")),
	}
	go c.readPump()
	return c
}

// Inbound returns the channel of raw text messages from the peer.
// The channel is closed when the peer disconnects or a read fails.
func (c *Conn) Inbound() <-chan []byte {
	return c.inbound
}

// Send writes one event as a JSON text message
func (c *Conn) Send(event model.ServerEvent) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(event)
}

// Close closes the underlying websocket
func (c *Conn) Close() error {
	return c.ws.Close()
}

// readPump moves messages from the websocket into the inbound channel.
// Binary and control frames other than close are ignored.
func (c *Conn) readPump() {
	defer close(c.inbound)

	for {
		messageType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("websocket read error", slog.String("error", err.Error()))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		c.inbound <- data
	}
}
