package model

// ActionKind names a betting action a player can take
type ActionKind string

const (
	ActionFold  ActionKind = "fold"
	ActionCheck ActionKind = "check"
	ActionCall  ActionKind = "call"
	ActionBet   ActionKind = "bet"
	ActionRaise ActionKind = "raise"
	ActionAllIn ActionKind = "allin"
)

// PlayerAction is a parsed inbound action request.
// Amount is meaningful only for bet/raise and defaults to zero.
type PlayerAction struct {
	Kind   ActionKind `json:"action"`
	Amount uint64     `json:"amount,omitempty"`
}

// ParseAction maps a raw action string to a PlayerAction.
// Unknown action strings return ok=false; callers drop the request.
func ParseAction(action string, amount uint64) (PlayerAction, bool) {
	switch ActionKind(action) {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise, ActionAllIn:
		return PlayerAction{Kind: ActionKind(action), Amount: amount}, true
	default:
		return PlayerAction{}, false
	}
}
