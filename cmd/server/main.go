package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cardtable/holdem-go/internal/api"
	"github.com/cardtable/holdem-go/internal/factory"
	"github.com/cardtable/holdem-go/internal/services/table"
	redisstorage "github.com/cardtable/holdem-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		TableConfig: tableConfigFromEnv(logger),
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start the game actor and the history recorder
	go app.Actor.Run(ctx)
	go app.Recorder.Run(ctx)

	// Create router and server
	router := api.NewRouter(api.RouterConfig{
		Logger:    logger,
		WSHandler: app.WSHandler,
		Storage:   app.Storage,
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			serverConfig.Port = p
		}
	}
	server := api.NewServer(router, serverConfig, logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// tableConfigFromEnv reads game parameters from the environment, falling
// back to the standard table on any unset or unparseable value
func tableConfigFromEnv(logger *slog.Logger) table.Config {
	cfg := table.DefaultConfig()

	read := func(name string, target *uint64) {
		raw := os.Getenv(name)
		if raw == "" {
			return
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			logger.Warn("ignoring invalid value", slog.String("var", name), slog.String("value", raw))
			return
		}
		*target = value
	}

	read("SMALL_BLIND", &cfg.SmallBlindAmount)
	read("BIG_BLIND", &cfg.BigBlindAmount)
	read("STARTING_STACK", &cfg.StartingStack)

	return cfg
}
