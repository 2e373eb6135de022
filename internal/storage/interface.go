package storage

import (
	"context"

	"github.com/cardtable/holdem-go/internal/model"
)

// Storage is the hand-history journal: an append-only record of the public
// event stream plus the latest table snapshot.
//
// It is observability data only. The game actor never reads table state
// back out of it, so a restart always begins from an empty table.
type Storage interface {
	// AppendEvent journals one public event, assigning its sequence number
	AppendEvent(ctx context.Context, record *model.EventRecord) (int64, error)

	// ListEvents returns all journaled events in append order
	ListEvents(ctx context.Context) ([]*model.EventRecord, error)

	// SaveSnapshot stores the latest public table snapshot
	SaveSnapshot(ctx context.Context, snapshot *model.TableState) error

	// GetSnapshot returns the latest stored snapshot, or
	// model.ErrSnapshotNotFound if none has been stored
	GetSnapshot(ctx context.Context) (*model.TableState, error)
}
