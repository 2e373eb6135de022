package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/services/table"
)

// Conn is the duplex message stream a session bridges. The transport layer
// (websocket upgrade and friends) supplies implementations; the session only
// needs send, receive and close.
type Conn interface {
	// Inbound returns the channel of raw inbound messages. The transport
	// closes it when the peer disconnects or a read fails.
	Inbound() <-chan []byte

	// Send writes one structured event to the peer
	Send(event model.ServerEvent) error

	// Close tears down the underlying connection
	Close() error
}

// actionRequest is the inbound client message shape
type actionRequest struct {
	Action string `json:"action"`
	Amount uint64 `json:"amount"`
}

// Session bridges one connection to the game actor and the broadcast
// stream. One Run goroutine per accepted connection.
type Session struct {
	actor       *table.Actor
	broadcaster *broadcast.Broadcaster
	conn        Conn
	logger      *slog.Logger

	mu       sync.Mutex
	playerID model.PlayerID
}

// New creates a session for an accepted connection
func New(actor *table.Actor, broadcaster *broadcast.Broadcaster, conn Conn, logger *slog.Logger) *Session {
	return &Session{
		actor:       actor,
		broadcaster: broadcaster,
		conn:        conn,
		logger:      logger.With(slog.String("component", "session")),
	}
}

// Run drives the session until the connection or the broadcast stream
// closes.
//
// The subscription MUST be taken before Join: joining can immediately start
// a round, and a session that subscribes afterwards would miss the
// round-started signal and with it the only chance to deliver its hole
// cards for that round.
func (s *Session) Run(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	sub := s.broadcaster.Subscribe()
	defer sub.Unsubscribe()

	playerID, err := s.actor.Join(ctx)
	if err != nil {
		s.logger.Warn("join rejected", slog.String("error", err.Error()))
		_ = s.conn.Send(model.ErrorEvent(err.Error()))
		return
	}
	s.setPlayerID(playerID)

	logger := s.logger.With(slog.String("player_id", string(playerID)))
	logger.Info("session connected")
	defer logger.Info("session closed")

	for {
		select {
		case <-ctx.Done():
			s.actor.Disconnect(context.Background(), playerID)
			return

		case event, ok := <-sub.Events():
			if !ok {
				// broadcaster shut down; nothing more will arrive
				return
			}
			if lagged := sub.Lagged(); lagged > 0 {
				logger.Warn("session lagged behind broadcast",
					slog.Uint64("dropped_events", lagged))
			}
			if !s.deliver(ctx, event, logger) {
				s.actor.Disconnect(context.Background(), playerID)
				return
			}

		case raw, ok := <-s.conn.Inbound():
			if !ok {
				s.actor.Disconnect(context.Background(), playerID)
				return
			}
			s.handleInbound(ctx, raw, logger)
		}
	}
}

// PlayerID returns the identifier assigned at join, empty before Run joins
func (s *Session) PlayerID() model.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Session) setPlayerID(playerID model.PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerID = playerID
}

// deliver forwards one broadcast event to the peer, and on the
// round-started signal additionally fetches and sends this player's hand.
// Returns false when the connection is no longer writable.
func (s *Session) deliver(ctx context.Context, event model.ServerEvent, logger *slog.Logger) bool {
	if err := s.conn.Send(event); err != nil {
		logger.Warn("send failed", slog.String("error", err.Error()))
		return false
	}

	if event.Type != model.EventRoundStarted {
		return true
	}

	private, err := s.actor.PrivateState(ctx, s.playerID)
	if err != nil {
		logger.Warn("private state fetch failed", slog.String("error", err.Error()))
		return true
	}
	if !private.HasHand() {
		// joined after dealing; nothing to show this round
		return true
	}

	if err := s.conn.Send(model.PrivateStateEvent(private)); err != nil {
		logger.Warn("private state send failed", slog.String("error", err.Error()))
		return false
	}
	return true
}

// handleInbound parses one client message and forwards the action to the
// actor. Malformed or unrecognized messages are dropped without a reply.
func (s *Session) handleInbound(ctx context.Context, raw []byte, logger *slog.Logger) {
	var req actionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		logger.Debug("ignoring malformed message", slog.String("error", err.Error()))
		return
	}

	action, ok := model.ParseAction(req.Action, req.Amount)
	if !ok {
		logger.Debug("ignoring unknown action", slog.String("action", req.Action))
		return
	}

	// the reply is awaited but unused; failures here are already value
	// errors scoped to this player
	if err := s.actor.Action(ctx, s.playerID, action); err != nil {
		logger.Warn("action rejected", slog.String("error", err.Error()))
	}
}
