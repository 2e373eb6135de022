package table

import (
	"log/slog"

	"github.com/cardtable/holdem-go/internal/model"
)

// startNewRound runs the full round-start sequence:
// promote waiting players, reset the deck and pot, advance the dealer,
// post blinds, deal hole cards, then announce the new state followed by
// the round-started signal.
//
// The signal is published strictly after the state broadcast so a session
// reacting to it always has the preflop snapshot first.
func (a *Actor) startNewRound() {
	if a.eligibleCount() < 2 {
		return
	}

	for i := range a.state.Players {
		if a.state.Players[i].Status == model.StatusWaiting {
			a.state.Players[i].Status = model.StatusActive
		}
	}

	a.resetRoundState()
	a.moveDealer()
	a.postBlinds()
	a.dealHoleCards()

	a.state.Phase = model.PhasePreflop
	turnSeat := a.nextActiveSeat(a.state.DealerSeat)
	a.state.CurrentTurnSeat = &turnSeat

	a.logger.Info("round started",
		slog.Int("dealer_seat", a.state.DealerSeat),
		slog.Int("active_players", a.state.CountByStatus(model.StatusActive)+a.state.CountByStatus(model.StatusAllIn)),
		slog.Uint64("pot", a.state.Pot))

	a.broadcastState()
	a.broadcaster.Publish(model.RoundStartedEvent())
}

// resetRoundState rebuilds a shuffled deck and zeroes per-round chip state
func (a *Actor) resetRoundState() {
	a.cards.Reset()
	a.state.CommunityCards = a.state.CommunityCards[:0]
	a.state.Pot = 0
	a.state.CurrentBet = 0
	for i := range a.state.Players {
		a.state.Players[i].Committed = 0
	}
}

func (a *Actor) moveDealer() {
	if len(a.state.Players) == 0 {
		return
	}
	a.state.DealerSeat = (a.state.DealerSeat + 1) % len(a.state.Players)
}

// postBlinds charges the two seats after the dealer and sets the current bet
func (a *Actor) postBlinds() {
	if len(a.state.Players) < 2 {
		return
	}

	smallBlindSeat := a.nextActiveSeat(a.state.DealerSeat)
	bigBlindSeat := a.nextActiveSeat(smallBlindSeat)

	a.applyBlind(smallBlindSeat, a.state.SmallBlindAmount)
	a.applyBlind(bigBlindSeat, a.state.BigBlindAmount)

	a.state.CurrentBet = a.state.BigBlindAmount
}

// applyBlind moves min(amount, stack) from the seat's stack into the pot.
// A blind that empties the stack marks the player all-in.
func (a *Actor) applyBlind(seat int, amount uint64) {
	if seat < 0 || seat >= len(a.state.Players) {
		return
	}

	player := &a.state.Players[seat]
	blind := min(amount, player.Stack)

	player.Stack -= blind
	player.Committed += blind
	a.state.Pot += blind

	if player.Stack == 0 {
		player.Status = model.StatusAllIn
	}

	a.broadcaster.Publish(model.BlindPostedEvent(seat, blind))
}

// dealHoleCards deals two cards to every active player in seat order
func (a *Actor) dealHoleCards() {
	for i := range a.state.Players {
		if a.state.Players[i].Status == model.StatusActive {
			a.cards.DealHand(a.state.Players[i].ID)
		}
	}
}

// nextActiveSeat walks clockwise from the given seat to the next active
// player, wrapping around the table
func (a *Actor) nextActiveSeat(from int) int {
	if len(a.state.Players) == 0 {
		return 0
	}

	seat := from
	for range a.state.Players {
		seat = (seat + 1) % len(a.state.Players)
		if a.state.Players[seat].Status == model.StatusActive {
			return seat
		}
	}
	return from
}

// dealCommunity burns one card then reveals the cards for the requested
// street and broadcasts the new state
func (a *Actor) dealCommunity(phase model.RoundPhase) {
	var reveal int
	switch phase {
	case model.PhaseFlop:
		reveal = 3
	case model.PhaseTurn, model.PhaseRiver:
		reveal = 1
	default:
		return
	}

	a.cards.Burn()
	a.state.CommunityCards = append(a.state.CommunityCards, a.cards.Reveal(reveal)...)
	a.state.Phase = phase

	a.logger.Info("community cards dealt",
		slog.String("phase", string(phase)),
		slog.Int("community_count", len(a.state.CommunityCards)))

	a.broadcastState()
}
