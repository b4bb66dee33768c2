// shared/config/config.go
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends selectable through PLAYER_STORE_BACKEND.
const (
	BackendMemory  = "memory"
	BackendMongoDB = "mongodb"
	BackendRedis   = "redis"
	BackendSQLite  = "sqlite"
)

// CommonConfig holds configuration fields that are shared across multiple services.
type CommonConfig struct {
	RedisAddrs              []string      `env:"REDIS_ADDRS" envSeparator:"," envDefault:"localhost:6379"`
	RedisPassword           string        `env:"REDIS_PASSWORD"`
	RegistryEnabled         bool          `env:"SERVICE_REGISTRY_ENABLED" envDefault:"false"`
	HeartbeatInterval       time.Duration `env:"SERVICE_HEARTBEAT_INTERVAL" envDefault:"5s"`         // How often to send a heartbeat to the registry
	HeartbeatTTL            time.Duration `env:"SERVICE_HEARTBEAT_TTL" envDefault:"15s"`             // How long an instance counts as alive without a heartbeat
	RegistryCleanupInterval time.Duration `env:"SERVICE_REGISTRY_CLEANUP_INTERVAL" envDefault:"30s"` // 0 disables the cleanup loop
	ServiceIP               string        `env:"POD_IP" envDefault:"0.0.0.0"`                        // Injected by Kubernetes
	ServicePort             int           // Derived from the listen address
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat               string        `env:"LOG_FORMAT" envDefault:"json"`
}

// PlayerServiceConfig holds configuration specific to the player-service.
type PlayerServiceConfig struct {
	CommonConfig
	ListenAddr                string        `env:"PLAYER_SERVICE_LISTEN_ADDR" envDefault:":8081"`
	StoreBackend              string        `env:"PLAYER_STORE_BACKEND" envDefault:"memory"`
	MongoDBConnStr            string        `env:"MONGODB_CONN_STR" envDefault:"mongodb://mongodb-service:27017"`
	MongoDBDatabase           string        `env:"MONGODB_DATABASE" envDefault:"roster"`
	MongoDBPlayersCollection  string        `env:"MONGODB_PLAYERS_COLLECTION" envDefault:"players"`
	MongoDBCountersCollection string        `env:"MONGODB_COUNTERS_COLLECTION" envDefault:"counters"`
	SQLitePath                string        `env:"SQLITE_PATH" envDefault:"players.db"`
	RequestTimeout            time.Duration `env:"PLAYER_REQUEST_TIMEOUT" envDefault:"5s"`
}

// LoadCommonConfig loads common configuration from environment variables.
func LoadCommonConfig() (CommonConfig, error) {
	var cfg CommonConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse common env: %w", err)
	}
	for i, addr := range cfg.RedisAddrs {
		cfg.RedisAddrs[i] = strings.TrimSpace(addr)
	}
	if cfg.HeartbeatInterval <= 0 {
		return cfg, fmt.Errorf("SERVICE_HEARTBEAT_INTERVAL must be positive (got %s)", cfg.HeartbeatInterval)
	}
	return cfg, nil
}

// LoadPlayerServiceConfig loads configuration for the player-service.
func LoadPlayerServiceConfig() (*PlayerServiceConfig, error) {
	common, err := LoadCommonConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load common config for player-service: %w", err)
	}

	cfg := &PlayerServiceConfig{CommonConfig: common}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse player-service env: %w", err)
	}
	cfg.CommonConfig = common

	switch cfg.StoreBackend {
	case BackendMemory, BackendMongoDB, BackendRedis, BackendSQLite:
	default:
		return nil, fmt.Errorf("PLAYER_STORE_BACKEND must be one of memory, mongodb, redis, sqlite (got %q)", cfg.StoreBackend)
	}

	cfg.ServicePort, err = extractPort(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to extract port from PLAYER_SERVICE_LISTEN_ADDR '%s': %w", cfg.ListenAddr, err)
	}
	return cfg, nil
}

// extractPort extracts the numeric port from a listen address (e.g., ":8081" -> 8081, "0.0.0.0:8081" -> 8081)
func extractPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		if strings.HasPrefix(listenAddr, ":") {
			portStr = strings.TrimPrefix(listenAddr, ":")
		} else {
			return 0, fmt.Errorf("invalid ListenAddr format for port extraction: %w", err)
		}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': %w", portStr, err)
	}
	return port, nil
}
