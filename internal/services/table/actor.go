package table

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/dependencies/random"
	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/services/cards"
)

const (
	// commandQueueSize bounds the actor's inbox; a full queue blocks
	// producers, which is the backpressure on session request rates
	commandQueueSize = 256

	// maxSeats is the seat limit for a single table
	maxSeats = 9
)

// Config holds the table's game parameters
type Config struct {
	SmallBlindAmount uint64
	BigBlindAmount   uint64
	StartingStack    uint64
}

// DefaultConfig returns the standard table parameters
func DefaultConfig() Config {
	return Config{
		SmallBlindAmount: 10,
		BigBlindAmount:   20,
		StartingStack:    1000,
	}
}

// Actor is the single owner of the table state and card store.
//
// All mutation happens on the actor goroutine, one command at a time, so no
// caller ever observes a partially-applied transition and no locks guard
// the state. Everything leaving the actor is a copied-out snapshot.
type Actor struct {
	cfg         Config
	state       *model.TableState
	cards       *cards.Store
	broadcaster *broadcast.Broadcaster
	commands    chan command
	done        chan struct{}
	logger      *slog.Logger
}

// NewActor creates a table actor. Run must be called before commands are
// issued.
func NewActor(cfg Config, rnd random.Random, broadcaster *broadcast.Broadcaster, logger *slog.Logger) *Actor {
	return &Actor{
		cfg: cfg,
		state: &model.TableState{
			Players:          []model.PublicPlayer{},
			CommunityCards:   []model.Card{},
			Phase:            model.PhaseWaiting,
			SmallBlindAmount: cfg.SmallBlindAmount,
			BigBlindAmount:   cfg.BigBlindAmount,
		},
		cards:       cards.NewStore(rnd),
		broadcaster: broadcaster,
		commands:    make(chan command, commandQueueSize),
		done:        make(chan struct{}),
		logger:      logger.With(slog.String("component", "table")),
	}
}

// Run consumes commands until the context is cancelled. It owns the state
// exclusively for its entire lifetime and is intended to run as exactly one
// goroutine.
func (a *Actor) Run(ctx context.Context) {
	a.logger.Info("table actor started")
	defer close(a.done)
	defer a.broadcaster.Close()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("table actor stopping")
			return
		case cmd := <-a.commands:
			a.apply(cmd)
		}
	}
}

func (a *Actor) apply(cmd command) {
	switch c := cmd.(type) {
	case joinCommand:
		id, err := a.addWaitingPlayer()
		// reply channels are single-use with a buffer of one, so this
		// never blocks even when the caller has already given up
		c.reply <- joinResult{playerID: id, err: err}
	case actionCommand:
		c.reply <- a.handleAction(c.playerID, c.action)
	case disconnectCommand:
		a.handleDisconnect(c.playerID)
	case privateStateCommand:
		c.reply <- a.privateState(c.playerID)
	case dealCommand:
		a.dealCommunity(c.phase)
	}
}

// Join seats a new player and returns their identifier.
// Fails with model.ErrTableFull when all seats are taken.
func (a *Actor) Join(ctx context.Context) (model.PlayerID, error) {
	reply := make(chan joinResult, 1)
	if err := a.send(ctx, joinCommand{reply: reply}); err != nil {
		return "", err
	}
	select {
	case res := <-reply:
		return res.playerID, res.err
	case <-a.done:
		return "", model.ErrActorStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Action applies a betting action for the given player.
// Fails with model.ErrPlayerNotFound for unknown identifiers.
func (a *Actor) Action(ctx context.Context, playerID model.PlayerID, action model.PlayerAction) error {
	reply := make(chan error, 1)
	if err := a.send(ctx, actionCommand{playerID: playerID, action: action, reply: reply}); err != nil {
		return err
	}
	select {
	case err := <-reply:
		return err
	case <-a.done:
		return model.ErrActorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Disconnect marks the player as waiting. Fire-and-forget: the seat is kept
// and no reply is produced.
func (a *Actor) Disconnect(ctx context.Context, playerID model.PlayerID) {
	_ = a.send(ctx, disconnectCommand{playerID: playerID})
}

// PrivateState returns the player's current hole cards. A player with no
// recorded hand gets an empty state, never an error.
func (a *Actor) PrivateState(ctx context.Context, playerID model.PlayerID) (model.PrivateState, error) {
	reply := make(chan model.PrivateState, 1)
	if err := a.send(ctx, privateStateCommand{playerID: playerID, reply: reply}); err != nil {
		return model.PrivateState{}, err
	}
	select {
	case private := <-reply:
		return private, nil
	case <-a.done:
		return model.PrivateState{}, model.ErrActorStopped
	case <-ctx.Done():
		return model.PrivateState{}, ctx.Err()
	}
}

// DealFlop burns one card and reveals three community cards.
// Nothing triggers the community deals automatically yet; betting-round
// completion detection is still an open gap.
func (a *Actor) DealFlop(ctx context.Context) error {
	return a.send(ctx, dealCommand{phase: model.PhaseFlop})
}

// DealTurn burns one card and reveals the fourth community card
func (a *Actor) DealTurn(ctx context.Context) error {
	return a.send(ctx, dealCommand{phase: model.PhaseTurn})
}

// DealRiver burns one card and reveals the fifth community card
func (a *Actor) DealRiver(ctx context.Context) error {
	return a.send(ctx, dealCommand{phase: model.PhaseRiver})
}

func (a *Actor) send(ctx context.Context, cmd command) error {
	select {
	case a.commands <- cmd:
		return nil
	case <-a.done:
		return model.ErrActorStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// addWaitingPlayer seats a new player and starts a round once two players
// are present while the table is idle
func (a *Actor) addWaitingPlayer() (model.PlayerID, error) {
	if len(a.state.Players) >= maxSeats {
		return "", model.ErrTableFull
	}

	playerID := model.PlayerID(uuid.NewString())
	seat := len(a.state.Players)

	a.state.Players = append(a.state.Players, model.PublicPlayer{
		ID:     playerID,
		Seat:   seat,
		Stack:  a.cfg.StartingStack,
		Status: model.StatusWaiting,
	})

	a.logger.Info("player joined",
		slog.String("player_id", string(playerID)),
		slog.Int("seat", seat))

	a.broadcastState()

	if a.state.Phase == model.PhaseWaiting && a.eligibleCount() >= 2 {
		a.startNewRound()
	}

	return playerID, nil
}

func (a *Actor) handleAction(playerID model.PlayerID, action model.PlayerAction) error {
	player := a.state.PlayerByID(playerID)
	if player == nil {
		return model.ErrPlayerNotFound
	}

	switch action.Kind {
	case model.ActionFold:
		player.Status = model.StatusWaiting
	case model.ActionCheck, model.ActionCall:
		// no chip movement in the current rules
	case model.ActionBet, model.ActionRaise:
		amount := min(action.Amount, player.Stack)
		player.Stack -= amount
		player.Committed += amount
		a.state.Pot += amount
	case model.ActionAllIn:
		amount := player.Stack
		player.Stack = 0
		player.Committed += amount
		a.state.Pot += amount
	}

	a.broadcastState()
	return nil
}

func (a *Actor) handleDisconnect(playerID model.PlayerID) {
	player := a.state.PlayerByID(playerID)
	if player == nil {
		return
	}
	player.Status = model.StatusWaiting
	a.logger.Info("player disconnected", slog.String("player_id", string(playerID)))
	a.broadcastState()
}

func (a *Actor) privateState(playerID model.PlayerID) model.PrivateState {
	return model.PrivateState{Hand: a.cards.Hand(playerID)}
}

func (a *Actor) eligibleCount() int {
	return a.state.CountByStatus(model.StatusWaiting) + a.state.CountByStatus(model.StatusActive)
}

func (a *Actor) broadcastState() {
	a.broadcaster.Publish(model.GameStateEvent(a.state.Snapshot()))
}
