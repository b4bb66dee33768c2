// shared/registry/client.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RegistryClient reads the registry. It is separate from ServiceRegistrar so
// tools such as playerctl can discover instances without registering.
type RegistryClient struct {
	redisClient    redis.UniversalClient
	serviceTimeout time.Duration
	logger         *slog.Logger
}

// NewRegistryClient takes an already initialized redis client.
func NewRegistryClient(redisClient redis.UniversalClient, serviceTimeout time.Duration, logger *slog.Logger) *RegistryClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegistryClient{
		redisClient:    redisClient,
		serviceTimeout: serviceTimeout,
		logger:         logger,
	}
}

// GetActiveServices returns the instances of serviceType keyed by instance ID.
// Instances whose last heartbeat is older than the service timeout are left out.
func (rc *RegistryClient) GetActiveServices(ctx context.Context, serviceType string) (map[string]ServiceInfo, error) {
	results, err := rc.redisClient.HGetAll(ctx, hashKey(serviceType)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get all services of type %s from Redis: %w", serviceType, err)
	}

	activeServices := make(map[string]ServiceInfo)
	now := time.Now()
	for instanceID, infoJSON := range results {
		var info ServiceInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			// malformed entries are removed by the registrar cleanup loop
			rc.logger.Warn("skipping malformed registry entry",
				slog.String("service_type", serviceType),
				slog.String("instance_id", instanceID),
				slog.String("error", err.Error()))
			continue
		}
		if now.Sub(info.LastSeenTime()) <= rc.serviceTimeout {
			activeServices[instanceID] = info
		}
	}
	return activeServices, nil
}
