package model

// EventType identifies the type of a server event
type EventType string

const (
	// EventRoundStarted signals a new round; it carries no payload and is
	// the trigger sessions use to fetch their private hand
	EventRoundStarted EventType = "round_started"
	// EventGameState carries a full public table snapshot
	EventGameState EventType = "game_state"
	// EventPrivateState carries a player's hole cards; sent only to the
	// owning session, never through the public broadcast
	EventPrivateState EventType = "private_state"
	// EventBlindPosted reports one forced blind contribution
	EventBlindPosted EventType = "blind_posted"
	// EventError carries a free-text failure notice
	EventError EventType = "error"
)

// ServerEvent is the outbound wire envelope: a type tag plus a
// type-specific payload
type ServerEvent struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// BlindPostedPayload is the payload for EventBlindPosted
type BlindPostedPayload struct {
	Seat   int    `json:"seat"`
	Amount uint64 `json:"amount"`
}

// ErrorPayload is the payload for EventError
type ErrorPayload struct {
	Message string `json:"message"`
}

// RoundStartedEvent builds the payload-free round start signal
func RoundStartedEvent() ServerEvent {
	return ServerEvent{Type: EventRoundStarted}
}

// GameStateEvent wraps a table snapshot for broadcast
func GameStateEvent(snapshot *TableState) ServerEvent {
	return ServerEvent{Type: EventGameState, Data: snapshot}
}

// PrivateStateEvent wraps a player's private view for targeted delivery
func PrivateStateEvent(private PrivateState) ServerEvent {
	return ServerEvent{Type: EventPrivateState, Data: private}
}

// BlindPostedEvent reports a blind posted at the given seat
func BlindPostedEvent(seat int, amount uint64) ServerEvent {
	return ServerEvent{Type: EventBlindPosted, Data: BlindPostedPayload{Seat: seat, Amount: amount}}
}

// ErrorEvent wraps a failure message
func ErrorEvent(message string) ServerEvent {
	return ServerEvent{Type: EventError, Data: ErrorPayload{Message: message}}
}
