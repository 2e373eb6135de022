package model

import (
	"encoding/json"
	"time"
)

// EventRecord is a journaled public event.
// The journal is append-only audit data; live game state is never restored
// from it.
type EventRecord struct {
	Sequence   int64           `json:"sequence"`
	Type       EventType       `json:"type"`
	Data       json.RawMessage `json:"data,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}
