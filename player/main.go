// player/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	playerapi "github.com/Ftotnem/player-roster/player/api"
	"github.com/Ftotnem/player-roster/player/service"
	"github.com/Ftotnem/player-roster/player/store"
	"github.com/Ftotnem/player-roster/shared/api"
	"github.com/Ftotnem/player-roster/shared/config"
	"github.com/Ftotnem/player-roster/shared/logging"
	mongodbu "github.com/Ftotnem/player-roster/shared/mongodb"
	redisu "github.com/Ftotnem/player-roster/shared/redis"
	"github.com/Ftotnem/player-roster/shared/registry"
)

const serviceVersion = "1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("player-service exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// --- 1. Load Configuration ---
	cfg, err := config.LoadPlayerServiceConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- 2. Connect to Redis when the store or the registry needs it ---
	var redisClient redis.UniversalClient
	if cfg.StoreBackend == config.BackendRedis || cfg.RegistryEnabled {
		redisClient, err = redisu.NewUniversalClient(cfg.RedisAddrs, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("error closing Redis client", slog.String("error", err.Error()))
			}
		}()
	}

	// --- 3. Open the player store ---
	playerStore, closeStore, err := openStore(ctx, cfg, redisClient, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- 4. Service and API handlers ---
	playerService := service.NewPlayerService(playerStore, logger)
	playerAPIHandlers := playerapi.NewPlayerAPIHandlers(playerService, logger, cfg.RequestTimeout)

	// --- 5. Service Registrar ---
	if cfg.RegistryEnabled {
		registrar := registry.NewServiceRegistrar(redisClient, registry.PlayerServiceType, serviceVersion, &cfg.CommonConfig, logger)
		registrar.Start()
		defer registrar.Stop()
	}

	// --- 6. HTTP Server ---
	baseServer := api.NewBaseServer(cfg.ListenAddr, logger)
	playerAPIHandlers.RegisterRoutes(baseServer.Router)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- baseServer.Start()
	}()

	// --- 7. Graceful Shutdown ---
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server graceful shutdown failed: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// openStore builds the configured PlayerStore and the func that releases it.
func openStore(ctx context.Context, cfg *config.PlayerServiceConfig, redisClient redis.UniversalClient, logger *slog.Logger) (store.PlayerStore, func(), error) {
	logger.Info("opening player store", slog.String("backend", cfg.StoreBackend))

	switch cfg.StoreBackend {
	case config.BackendMemory:
		ms := store.NewMemoryPlayerStore()
		return ms, func() {}, nil

	case config.BackendMongoDB:
		mongoClient, err := mongodbu.NewClient(ctx, cfg.MongoDBConnStr, cfg.MongoDBDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		ms := store.NewMongoPlayerStore(
			mongoClient.Collection(cfg.MongoDBPlayersCollection),
			mongoClient.Collection(cfg.MongoDBCountersCollection),
		)
		return ms, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(disconnectCtx); err != nil {
				logger.Error("failed to disconnect from MongoDB", slog.String("error", err.Error()))
			}
		}, nil

	case config.BackendRedis:
		return store.NewRedisPlayerStore(redisClient), func() {}, nil

	case config.BackendSQLite:
		ss, err := store.NewSQLitePlayerStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return ss, func() {
			if err := ss.Close(); err != nil {
				logger.Error("failed to close SQLite store", slog.String("error", err.Error()))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown player store backend %q", cfg.StoreBackend)
}
