package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardtable/holdem-go/internal/model"
	"github.com/cardtable/holdem-go/internal/storage"
)

// Storage is a Redis-backed implementation of the journal interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) AppendEvent(ctx context.Context, record *model.EventRecord) (int64, error) {
	seq, err := s.client.Incr(ctx, sequenceKey()).Result()
	if err != nil {
		return 0, err
	}

	stored := *record
	stored.Sequence = seq

	data, err := json.Marshal(&stored)
	if err != nil {
		return 0, err
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, eventsKey(), data)
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, eventsKey(), s.cfg.HistoryTTL)
		pipe.Expire(ctx, sequenceKey(), s.cfg.HistoryTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return seq, nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]*model.EventRecord, error) {
	items, err := s.client.LRange(ctx, eventsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.EventRecord, 0, len(items))
	for _, item := range items {
		var record model.EventRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.TableState) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	if s.cfg.HistoryTTL > 0 {
		return s.client.Set(ctx, snapshotKey(), data, s.cfg.HistoryTTL).Err()
	}
	return s.client.Set(ctx, snapshotKey(), data, 0).Err()
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.TableState, error) {
	data, err := s.client.Get(ctx, snapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot model.TableState
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
