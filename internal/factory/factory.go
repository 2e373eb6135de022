package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cardtable/holdem-go/internal/broadcast"
	"github.com/cardtable/holdem-go/internal/dependencies/clock"
	"github.com/cardtable/holdem-go/internal/dependencies/random"
	"github.com/cardtable/holdem-go/internal/history"
	"github.com/cardtable/holdem-go/internal/services/table"
	"github.com/cardtable/holdem-go/internal/storage"
	"github.com/cardtable/holdem-go/internal/storage/memory"
	redisstorage "github.com/cardtable/holdem-go/internal/storage/redis"
	"github.com/cardtable/holdem-go/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core
	Broadcaster *broadcast.Broadcaster
	Actor       *table.Actor
	Recorder    *history.Recorder
	WSHandler   *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// TableConfig holds the game parameters (optional)
	// If zero value, defaults to table.DefaultConfig()
	TableConfig table.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the journal backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	tableCfg := cfg.TableConfig
	if tableCfg.BigBlindAmount == 0 {
		tableCfg = table.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, tableCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, tableCfg table.Config, logger *slog.Logger) *App {
	broadcaster := broadcast.New(logger)
	actor := table.NewActor(tableCfg, rnd, broadcaster, logger)
	recorder := history.NewRecorder(broadcaster, store, clk, logger)
	wsHandler := ws.NewHandler(actor, broadcaster, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Broadcaster: broadcaster,
		Actor:       actor,
		Recorder:    recorder,
		WSHandler:   wsHandler,
	}
}
