package memory

import (
	"context"
	"sync"

	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/storage"
)

// Storage is the in-memory journal implementation and the default backend
type Storage struct {
	mu       sync.RWMutex
	events   []*model.EventRecord
	snapshot *model.TableState
	sequence int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AppendEvent(ctx context.Context, record *model.EventRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	stored := *record
	stored.Sequence = s.sequence
	s.events = append(s.events, &stored)
	return stored.Sequence, nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]*model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.EventRecord, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.TableState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.TableState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, model.ErrSnapshotNotFound
	}
	return s.snapshot, nil
}
