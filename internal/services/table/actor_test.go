package table

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/dependencies/mocks"
	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/testutil"
)

const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 5 * time.Millisecond
)

type ActorSuite struct {
	suite.Suite
	broadcaster *broadcast.Broadcaster
	random      *mocks.MockRandom
	actor       *Actor
	sub         *broadcast.Subscription
	ctx         context.Context
	cancel      context.CancelFunc
}

func TestActorSuite(t *testing.T) {
	suite.Run(t, new(ActorSuite))
}

func (s *ActorSuite) SetupTest() {
	s.broadcaster = broadcast.New(testutil.NopLogger())
	s.random = mocks.NewMockRandom()
	s.actor = NewActor(DefaultConfig(), s.random, s.broadcaster, testutil.NopLogger())

	s.ctx, s.cancel = context.WithCancel(context.Background())
	go s.actor.Run(s.ctx)

	s.sub = s.broadcaster.Subscribe()
}

func (s *ActorSuite) TearDownTest() {
	s.cancel()
}

// drainEvents collects every event already buffered on the suite's
// subscription. Commands are synchronous, so by the time a command's reply
// arrives its broadcasts are in the buffer.
func (s *ActorSuite) drainEvents() []model.ServerEvent {
	var events []model.ServerEvent
	for {
		select {
		case event := <-s.sub.Events():
			events = append(events, event)
		default:
			return events
		}
	}
}

// lastState returns the snapshot in the most recent game state event
func (s *ActorSuite) lastState(events []model.ServerEvent) *model.TableState {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == model.EventGameState {
			state, ok := events[i].Data.(*model.TableState)
			s.Require().True(ok)
			return state
		}
	}
	s.Require().FailNow("no game state event found")
	return nil
}

// Join tests

func (s *ActorSuite) TestJoinSeatsUpToNinePlayers() {
	ids := make(map[model.PlayerID]bool)
	for seat := 0; seat < 9; seat++ {
		id, err := s.actor.Join(s.ctx)
		s.Require().NoError(err)
		s.False(ids[id], "player ID reused")
		ids[id] = true
	}

	state := s.lastState(s.drainEvents())
	s.Require().Len(state.Players, 9)
	for i, player := range state.Players {
		s.Equal(i, player.Seat)
		s.Equal(uint64(1000), player.Stack+player.Committed)
	}
}

func (s *ActorSuite) TestTenthJoinFailsWithTableFull() {
	for i := 0; i < 9; i++ {
		_, err := s.actor.Join(s.ctx)
		s.Require().NoError(err)
	}

	_, err := s.actor.Join(s.ctx)
	s.ErrorIs(err, model.ErrTableFull)

	state := s.lastState(s.drainEvents())
	s.Len(state.Players, 9)
}

func (s *ActorSuite) TestSingleJoinDoesNotStartRound() {
	_, err := s.actor.Join(s.ctx)
	s.Require().NoError(err)

	events := s.drainEvents()
	s.Require().Len(events, 1)
	s.Equal(model.EventGameState, events[0].Type)

	state := s.lastState(events)
	s.Equal(model.PhaseWaiting, state.Phase)
	s.Equal(model.StatusWaiting, state.Players[0].Status)
}

// Round start tests

func (s *ActorSuite) TestSecondJoinStartsRound() {
	_, err := s.actor.Join(s.ctx)
	s.Require().NoError(err)
	s.drainEvents()

	_, err = s.actor.Join(s.ctx)
	s.Require().NoError(err)

	events := s.drainEvents()
	// join broadcast, two blinds, preflop state, round-started signal
	s.Require().Len(events, 5)
	s.Equal(model.EventGameState, events[0].Type)
	s.Equal(model.EventBlindPosted, events[1].Type)
	s.Equal(model.EventBlindPosted, events[2].Type)
	s.Equal(model.EventGameState, events[3].Type)
	s.Equal(model.EventRoundStarted, events[4].Type)

	// the round-started signal carries no payload
	s.Nil(events[4].Data)
}

func (s *ActorSuite) TestRoundStartAdvancesDealerAndPostsBlinds() {
	_, _ = s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)

	events := s.drainEvents()
	state := s.lastState(events)

	// dealer moves off seat 0 at the first round start
	s.Equal(1, state.DealerSeat)
	s.Equal(model.PhasePreflop, state.Phase)
	s.Equal(uint64(20), state.CurrentBet)

	// heads-up: small blind lands after the dealer, big blind after that
	small := state.Players[0]
	big := state.Players[1]
	s.Equal(uint64(10), small.Committed)
	s.Equal(uint64(990), small.Stack)
	s.Equal(uint64(20), big.Committed)
	s.Equal(uint64(980), big.Stack)
	s.Equal(uint64(30), state.Pot)

	blind1, ok := events[1].Data.(model.BlindPostedPayload)
	s.Require().True(ok)
	s.Equal(model.BlindPostedPayload{Seat: 0, Amount: 10}, blind1)
	blind2, ok := events[2].Data.(model.BlindPostedPayload)
	s.Require().True(ok)
	s.Equal(model.BlindPostedPayload{Seat: 1, Amount: 20}, blind2)

	// action starts with the next active seat after the dealer
	s.Require().NotNil(state.CurrentTurnSeat)
	s.Equal(0, *state.CurrentTurnSeat)
}

func (s *ActorSuite) TestPotMatchesCommittedSum() {
	_, _ = s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)

	state := s.lastState(s.drainEvents())
	var committed uint64
	for _, player := range state.Players {
		committed += player.Committed
	}
	s.Equal(committed, state.Pot)
}

func (s *ActorSuite) TestHoleCardsAreDistinctAcrossPlayers() {
	id1, _ := s.actor.Join(s.ctx)
	id2, _ := s.actor.Join(s.ctx)

	private1, err := s.actor.PrivateState(s.ctx, id1)
	s.Require().NoError(err)
	private2, err := s.actor.PrivateState(s.ctx, id2)
	s.Require().NoError(err)

	s.Require().Len(private1.Hand, 2)
	s.Require().Len(private2.Hand, 2)

	seen := make(map[model.Card]bool)
	for _, card := range append(private1.Hand, private2.Hand...) {
		s.False(seen[card], "card %v dealt twice", card)
		seen[card] = true
	}
}

func (s *ActorSuite) TestLateJoinerGetsNoHand() {
	_, _ = s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)

	// third player arrives mid-round and waits
	id3, err := s.actor.Join(s.ctx)
	s.Require().NoError(err)

	state := s.lastState(s.drainEvents())
	s.Equal(model.StatusWaiting, state.Players[2].Status)

	private, err := s.actor.PrivateState(s.ctx, id3)
	s.Require().NoError(err)
	s.False(private.HasHand())
}

func (s *ActorSuite) TestPrivateStateBeforeRoundStartIsEmpty() {
	id, _ := s.actor.Join(s.ctx)

	private, err := s.actor.PrivateState(s.ctx, id)
	s.Require().NoError(err)
	s.False(private.HasHand())
}

// Action tests

func (s *ActorSuite) TestBetMovesChipsToPot() {
	id1, _ := s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	err := s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionBet, Amount: 50})
	s.Require().NoError(err)

	state := s.lastState(s.drainEvents())
	player := state.PlayerByID(id1)
	s.Equal(uint64(940), player.Stack)
	s.Equal(uint64(60), player.Committed)
	s.Equal(uint64(80), state.Pot)
}

func (s *ActorSuite) TestBetIsCappedAtStack() {
	id1, _ := s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	err := s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionRaise, Amount: 1_000_000})
	s.Require().NoError(err)

	state := s.lastState(s.drainEvents())
	player := state.PlayerByID(id1)
	s.Equal(uint64(0), player.Stack)
	s.Equal(uint64(1000), player.Committed)
	s.Equal(uint64(1020), state.Pot)
}

func (s *ActorSuite) TestAllInCommitsEntireStack() {
	id1, _ := s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	err := s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionAllIn})
	s.Require().NoError(err)

	state := s.lastState(s.drainEvents())
	player := state.PlayerByID(id1)
	s.Equal(uint64(0), player.Stack)
	s.Equal(uint64(1000), player.Committed)
}

func (s *ActorSuite) TestCheckAndCallChangeNothing() {
	id1, _ := s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	before := s.lastState(s.drainEvents())

	s.Require().NoError(s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionCheck}))
	s.Require().NoError(s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionCall}))

	after := s.lastState(s.drainEvents())
	s.Equal(before.Pot, after.Pot)
	s.Equal(before.Players, after.Players)
}

func (s *ActorSuite) TestFoldDemotesPlayerToWaiting() {
	id1, _ := s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	err := s.actor.Action(s.ctx, id1, model.PlayerAction{Kind: model.ActionFold})
	s.Require().NoError(err)

	state := s.lastState(s.drainEvents())
	s.Equal(model.StatusWaiting, state.PlayerByID(id1).Status)
}

func (s *ActorSuite) TestActionForUnknownPlayerFails() {
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	err := s.actor.Action(s.ctx, "nobody", model.PlayerAction{Kind: model.ActionBet, Amount: 10})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// a rejected action broadcasts nothing
	s.Empty(s.drainEvents())
}

// Disconnect tests

func (s *ActorSuite) TestDisconnectKeepsSeatAndDemotesToWaiting() {
	id1, _ := s.actor.Join(s.ctx)
	id2, _ := s.actor.Join(s.ctx)
	before := s.lastState(s.drainEvents())

	s.actor.Disconnect(s.ctx, id1)

	// disconnect is fire-and-forget; wait for its broadcast
	event := <-s.sub.Events()
	s.Require().Equal(model.EventGameState, event.Type)
	state := event.Data.(*model.TableState)

	s.Equal(model.StatusWaiting, state.PlayerByID(id1).Status)
	s.Equal(0, state.PlayerByID(id1).Seat)
	// the other player is untouched
	s.Equal(before.PlayerByID(id2), state.PlayerByID(id2))
	s.Equal(before.Phase, state.Phase)
}

func (s *ActorSuite) TestDisconnectForUnknownPlayerIsIgnored() {
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	s.actor.Disconnect(s.ctx, "nobody")

	// another command flushes the queue behind the disconnect
	_, err := s.actor.PrivateState(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(s.drainEvents())
}

// Community dealing tests

func (s *ActorSuite) TestDealFlopTurnRiver() {
	_, _ = s.actor.Join(s.ctx)
	_, _ = s.actor.Join(s.ctx)
	s.drainEvents()

	s.Require().NoError(s.actor.DealFlop(s.ctx))
	state := s.lastState(s.drainEvents())
	s.Equal(model.PhaseFlop, state.Phase)
	s.Require().Len(state.CommunityCards, 3)

	s.Require().NoError(s.actor.DealTurn(s.ctx))
	state = s.lastState(s.drainEvents())
	s.Equal(model.PhaseTurn, state.Phase)
	s.Require().Len(state.CommunityCards, 4)

	s.Require().NoError(s.actor.DealRiver(s.ctx))
	state = s.lastState(s.drainEvents())
	s.Equal(model.PhaseRiver, state.Phase)
	s.Require().Len(state.CommunityCards, 5)

	// no duplicates across the board
	seen := make(map[model.Card]bool)
	for _, card := range state.CommunityCards {
		s.False(seen[card], "card %v on the board twice", card)
		seen[card] = true
	}
}

// Lifecycle tests

func (s *ActorSuite) TestCommandsAfterStopFail() {
	s.cancel()

	// the actor drains and closes; commands eventually observe the stop
	s.Eventually(func() bool {
		_, err := s.actor.Join(context.Background())
		return errors.Is(err, model.ErrActorStopped)
	}, eventuallyTimeout, eventuallyTick)
}

func (s *ActorSuite) TestStopClosesBroadcaster() {
	s.cancel()

	s.Eventually(func() bool {
		select {
		case _, ok := <-s.sub.Events():
			return !ok
		default:
			return false
		}
	}, eventuallyTimeout, eventuallyTick)
}
