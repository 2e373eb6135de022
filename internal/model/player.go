package model

// PlayerID uniquely identifies a player for the lifetime of the process
type PlayerID string

// PlayerStatus is a player's participation state at the table
type PlayerStatus string

const (
	// StatusWaiting means the player is seated but not in the current round
	StatusWaiting PlayerStatus = "waiting"
	// StatusActive means the player is dealt into the current round
	StatusActive PlayerStatus = "active"
	// StatusFolded means the player has folded out of the current round.
	// The current rules demote folding players straight to waiting so they
	// are re-seated next round; the value stays in the vocabulary for
	// clients that render it.
	StatusFolded PlayerStatus = "folded"
	// StatusAllIn means the player's entire stack is committed
	StatusAllIn PlayerStatus = "allin"
)

// PublicPlayer is the broadcast-safe projection of a seated player.
// It carries everything about the player except hole cards.
type PublicPlayer struct {
	ID        PlayerID     `json:"id"`
	Seat      int          `json:"seat"`
	Stack     uint64       `json:"stack"`
	Status    PlayerStatus `json:"status"`
	Committed uint64       `json:"committed"`
}

// PrivateState is a single player's view of their own hole cards.
// It is delivered only to the owning session, never broadcast.
type PrivateState struct {
	Hand []Card `json:"hand,omitempty"`
}

// HasHand reports whether hole cards have been dealt
func (p PrivateState) HasHand() bool {
	return len(p.Hand) > 0
}
