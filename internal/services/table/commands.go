package table

import "github.com/cardtable/holdem-go/internal/model"

// command is one serialized unit of work for the actor goroutine.
// Each request/reply command carries its own single-use reply channel,
// buffered with capacity one so the actor never blocks answering.
type command interface{ isCommand() }

type joinResult struct {
	playerID model.PlayerID
	err      error
}

type joinCommand struct {
	reply chan joinResult
}

type actionCommand struct {
	playerID model.PlayerID
	action   model.PlayerAction
	reply    chan error
}

// disconnectCommand is fire-and-forget; there is no reply channel
type disconnectCommand struct {
	playerID model.PlayerID
}

type privateStateCommand struct {
	playerID model.PlayerID
	reply    chan model.PrivateState
}

type dealCommand struct {
	phase model.RoundPhase
}

func (joinCommand) isCommand()         {}
func (actionCommand) isCommand()       {}
func (disconnectCommand) isCommand()   {}
func (privateStateCommand) isCommand() {}
func (dealCommand) isCommand()         {}
