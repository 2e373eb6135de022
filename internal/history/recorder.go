package history

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/dependencies/clock"
	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/storage"
)

// Recorder journals the public event stream.
//
// It subscribes to the broadcaster like any session does, so it can only
// ever see public events; private state never flows through the multicast
// and therefore never reaches the journal. A lagging recorder skips events
// rather than slowing the publisher, the same trade every subscriber makes.
type Recorder struct {
	broadcaster *broadcast.Broadcaster
	storage     storage.Storage
	clock       clock.Clock
	logger      *slog.Logger
}

// NewRecorder creates a recorder writing to the given journal
func NewRecorder(broadcaster *broadcast.Broadcaster, store storage.Storage, clk clock.Clock, logger *slog.Logger) *Recorder {
	return &Recorder{
		broadcaster: broadcaster,
		storage:     store,
		clock:       clk,
		logger:      logger.With(slog.String("component", "history")),
	}
}

// Run consumes broadcast events until the broadcaster closes or the
// context is cancelled. Intended to run as its own goroutine.
func (r *Recorder) Run(ctx context.Context) {
	sub := r.broadcaster.Subscribe()
	defer sub.Unsubscribe()

	r.logger.Info("history recorder started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("history recorder stopping")
			return
		case event, ok := <-sub.Events():
			if !ok {
				r.logger.Info("history recorder stopping, broadcast closed")
				return
			}
			if lagged := sub.Lagged(); lagged > 0 {
				r.logger.Warn("history recorder lagged behind broadcast",
					slog.Uint64("dropped_events", lagged))
			}
			r.record(ctx, event)
		}
	}
}

func (r *Recorder) record(ctx context.Context, event model.ServerEvent) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		r.logger.Error("failed to encode event payload",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}

	record := &model.EventRecord{
		Type:       event.Type,
		Data:       data,
		RecordedAt: r.clock.Now(),
	}

	if _, err := r.storage.AppendEvent(ctx, record); err != nil {
		r.logger.Error("failed to journal event",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()))
		return
	}

	if event.Type == model.EventGameState {
		if snapshot, ok := event.Data.(*model.TableState); ok {
			if err := r.storage.SaveSnapshot(ctx, snapshot); err != nil {
				r.logger.Error("failed to store snapshot", slog.String("error", err.Error()))
			}
		}
	}
}
