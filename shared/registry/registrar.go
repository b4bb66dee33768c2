// shared/registry/registrar.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ftotnem/player-roster/shared/config"
)

// ServiceRegistrar handles the self-registration and heartbeating of a service instance.
type ServiceRegistrar struct {
	redisClient redis.UniversalClient
	serviceType string
	cfg         *config.CommonConfig
	serviceID   string
	version     string
	logger      *slog.Logger

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewServiceRegistrar creates a registrar with a fresh instance ID for serviceType.
func NewServiceRegistrar(redisClient redis.UniversalClient, serviceType, version string, cfg *config.CommonConfig, logger *slog.Logger) *ServiceRegistrar {
	if logger == nil {
		logger = slog.Default()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceType, uuid.New().String())
	return &ServiceRegistrar{
		redisClient: redisClient,
		serviceType: serviceType,
		cfg:         cfg,
		serviceID:   serviceID,
		version:     version,
		logger:      logger.With(slog.String("service_type", serviceType), slog.String("service_id", serviceID)),
		stopChan:    make(chan struct{}),
	}
}

// Start registers the instance and begins heartbeating in the background.
func (sr *ServiceRegistrar) Start() {
	sr.logger.Info("starting service registrar",
		slog.String("ip", sr.cfg.ServiceIP),
		slog.Int("port", sr.cfg.ServicePort))

	sr.registerService()

	sr.wg.Add(1)
	go sr.heartbeatLoop()

	if sr.cfg.RegistryCleanupInterval > 0 {
		sr.wg.Add(1)
		go sr.cleanupLoop()
	}
}

// Stop halts the background loops and removes this instance from the registry.
// It is safe to call more than once.
func (sr *ServiceRegistrar) Stop() {
	sr.stopOnce.Do(func() {
		close(sr.stopChan)
		sr.wg.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := sr.redisClient.HDel(ctx, hashKey(sr.serviceType), sr.serviceID).Err(); err != nil {
			sr.logger.Error("failed to remove service from registry", slog.String("error", err.Error()))
			return
		}
		sr.logger.Info("service removed from registry")
	})
}

func (sr *ServiceRegistrar) heartbeatLoop() {
	defer sr.wg.Done()

	ticker := time.NewTicker(sr.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sr.registerService()
		case <-sr.stopChan:
			return
		}
	}
}

// registerService writes the instance entry with a fresh LastSeen.
func (sr *ServiceRegistrar) registerService() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	info := ServiceInfo{
		ServiceID:   sr.serviceID,
		ServiceType: sr.serviceType,
		IP:          sr.cfg.ServiceIP,
		Port:        sr.cfg.ServicePort,
		LastSeen:    time.Now().UnixMilli(),
		Metadata:    map[string]string{"version": sr.version},
	}
	infoJSON, err := json.Marshal(info)
	if err != nil {
		sr.logger.Error("failed to marshal service info", slog.String("error", err.Error()))
		return
	}
	if err := sr.redisClient.HSet(ctx, hashKey(sr.serviceType), sr.serviceID, infoJSON).Err(); err != nil {
		sr.logger.Error("failed to heartbeat service", slog.String("error", err.Error()))
		return
	}
	sr.logger.Debug("service heartbeated")
}

func (sr *ServiceRegistrar) cleanupLoop() {
	defer sr.wg.Done()

	ticker := time.NewTicker(sr.cfg.RegistryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sr.performCleanup()
		case <-sr.stopChan:
			return
		}
	}
}

// performCleanup removes entries that are malformed or older than HeartbeatTTL.
func (sr *ServiceRegistrar) performCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := hashKey(sr.serviceType)
	results, err := sr.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		sr.logger.Error("registry cleanup failed to list services", slog.String("error", err.Error()))
		return
	}

	now := time.Now()
	for instanceID, infoJSON := range results {
		var info ServiceInfo
		stale := json.Unmarshal([]byte(infoJSON), &info) != nil ||
			now.Sub(info.LastSeenTime()) > sr.cfg.HeartbeatTTL
		if !stale {
			continue
		}
		if err := sr.redisClient.HDel(ctx, key, instanceID).Err(); err != nil {
			sr.logger.Error("registry cleanup failed to delete entry",
				slog.String("instance_id", instanceID), slog.String("error", err.Error()))
			continue
		}
		sr.logger.Info("removed stale registry entry", slog.String("instance_id", instanceID))
	}
}

// GetServiceID returns the unique ID assigned to this service instance.
func (sr *ServiceRegistrar) GetServiceID() string {
	return sr.serviceID
}

// GetServiceType returns the type of this service instance.
func (sr *ServiceRegistrar) GetServiceType() string {
	return sr.serviceType
}
