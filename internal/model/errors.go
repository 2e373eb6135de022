package model

import "errors"

// Common errors used across the application
var (
	// ErrTableFull is returned when a join would exceed the seat limit
	ErrTableFull = errors.New("table is full")

	// ErrPlayerNotFound is returned for actions naming an unknown player
	ErrPlayerNotFound = errors.New("player not found")

	// ErrActorStopped is returned when a command is issued after the game
	// actor has shut down; callers must treat it as terminal
	ErrActorStopped = errors.New("game actor has stopped")

	// ErrEventNotFound is returned by storage lookups with no journaled data
	ErrEventNotFound = errors.New("no events recorded")

	// ErrSnapshotNotFound is returned when no table snapshot has been stored
	ErrSnapshotNotFound = errors.New("no table snapshot recorded")
)
