package model

// RoundPhase is the forward-progressing phase of a single round
type RoundPhase string

const (
	PhaseWaiting  RoundPhase = "waiting"
	PhasePreflop  RoundPhase = "preflop"
	PhaseFlop     RoundPhase = "flop"
	PhaseTurn     RoundPhase = "turn"
	PhaseRiver    RoundPhase = "river"
	PhaseShowdown RoundPhase = "showdown"
)

// TableState is the public snapshot of the table.
//
// Invariants: Pot equals the sum of every player's Committed since the last
// round reset; at most one player occupies a given seat index.
type TableState struct {
	Players          []PublicPlayer `json:"players"`
	CommunityCards   []Card         `json:"community_cards"`
	Pot              uint64         `json:"pot"`
	DealerSeat       int            `json:"dealer_seat"`
	CurrentTurnSeat  *int           `json:"current_turn_seat"`
	Phase            RoundPhase     `json:"phase"`
	SmallBlindAmount uint64         `json:"small_blind_amount"`
	BigBlindAmount   uint64         `json:"big_blind_amount"`
	CurrentBet       uint64         `json:"current_bet"`
}

// Snapshot returns a deep copy safe to hand across the actor boundary.
// The live state is owned by a single goroutine; everything published
// outward must be copied out so later mutations cannot tear a reader.
func (t *TableState) Snapshot() *TableState {
	players := make([]PublicPlayer, len(t.Players))
	copy(players, t.Players)

	community := make([]Card, len(t.CommunityCards))
	copy(community, t.CommunityCards)

	var turnSeat *int
	if t.CurrentTurnSeat != nil {
		seat := *t.CurrentTurnSeat
		turnSeat = &seat
	}

	return &TableState{
		Players:          players,
		CommunityCards:   community,
		Pot:              t.Pot,
		DealerSeat:       t.DealerSeat,
		CurrentTurnSeat:  turnSeat,
		Phase:            t.Phase,
		SmallBlindAmount: t.SmallBlindAmount,
		BigBlindAmount:   t.BigBlindAmount,
		CurrentBet:       t.CurrentBet,
	}
}

// PlayerByID returns the seated player with the given ID, or nil
func (t *TableState) PlayerByID(id PlayerID) *PublicPlayer {
	for i := range t.Players {
		if t.Players[i].ID == id {
			return &t.Players[i]
		}
	}
	return nil
}

// CountByStatus returns how many players currently hold the given status
func (t *TableState) CountByStatus(status PlayerStatus) int {
	count := 0
	for i := range t.Players {
		if t.Players[i].Status == status {
			count++
		}
	}
	return count
}
