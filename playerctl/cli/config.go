// playerctl/cli/config.go
package cli

import (
	"os"
	"strings"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL     string
	Output        string
	Timeout       time.Duration
	RedisAddrs    []string
	RedisPassword string
}

// DefaultConfig returns a Config with defaults taken from PLAYERCTL_* variables.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:     getEnvOrDefault("PLAYERCTL_SERVER", "http://localhost:8081"),
		Output:        getEnvOrDefault("PLAYERCTL_OUTPUT", "text"),
		Timeout:       10 * time.Second,
		RedisAddrs:    strings.Split(getEnvOrDefault("PLAYERCTL_REDIS_ADDRS", "localhost:6379"), ","),
		RedisPassword: os.Getenv("PLAYERCTL_REDIS_PASSWORD"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
