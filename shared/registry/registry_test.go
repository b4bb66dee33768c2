package registry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ftotnem/player-roster/shared/config"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.CommonConfig {
	return &config.CommonConfig{
		HeartbeatInterval:       20 * time.Millisecond,
		HeartbeatTTL:            time.Second,
		RegistryCleanupInterval: 0,
		ServiceIP:               "10.1.2.3",
		ServicePort:             8081,
	}
}

func TestRegistrarRegistersAndDeregisters(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()

	registrar := NewServiceRegistrar(client, PlayerServiceType, "test", testConfig(), quietLogger())
	registrar.Start()

	raw := mr.HGet(hashKey(PlayerServiceType), registrar.GetServiceID())
	require.NotEmpty(t, raw)
	var info ServiceInfo
	require.NoError(t, json.Unmarshal([]byte(raw), &info))
	assert.Equal(t, "10.1.2.3", info.IP)
	assert.Equal(t, 8081, info.Port)
	assert.Equal(t, "test", info.Metadata["version"])
	assert.WithinDuration(t, time.Now(), info.LastSeenTime(), 5*time.Second)

	reader := NewRegistryClient(client, time.Second, quietLogger())
	active, err := reader.GetActiveServices(ctx, PlayerServiceType)
	require.NoError(t, err)
	assert.Contains(t, active, registrar.GetServiceID())

	registrar.Stop()
	registrar.Stop()

	active, err = reader.GetActiveServices(ctx, PlayerServiceType)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRegistrarHeartbeatRefreshesLastSeen(t *testing.T) {
	mr, client := newTestRedis(t)

	registrar := NewServiceRegistrar(client, PlayerServiceType, "test", testConfig(), quietLogger())
	registrar.Start()
	defer registrar.Stop()

	first := mr.HGet(hashKey(PlayerServiceType), registrar.GetServiceID())
	require.Eventually(t, func() bool {
		return mr.HGet(hashKey(PlayerServiceType), registrar.GetServiceID()) != first
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRegistryClientSkipsStaleAndMalformed(t *testing.T) {
	mr, client := newTestRedis(t)
	key := hashKey(PlayerServiceType)

	fresh, _ := json.Marshal(ServiceInfo{ServiceID: "fresh", LastSeen: time.Now().UnixMilli()})
	stale, _ := json.Marshal(ServiceInfo{ServiceID: "stale", LastSeen: time.Now().Add(-time.Hour).UnixMilli()})
	mr.HSet(key, "fresh", string(fresh))
	mr.HSet(key, "stale", string(stale))
	mr.HSet(key, "broken", "{not json")

	active, err := NewRegistryClient(client, time.Minute, quietLogger()).GetActiveServices(context.Background(), PlayerServiceType)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Contains(t, active, "fresh")
}

func TestRegistrarCleanupRemovesStaleEntries(t *testing.T) {
	mr, client := newTestRedis(t)
	key := hashKey(PlayerServiceType)

	stale, _ := json.Marshal(ServiceInfo{ServiceID: "stale", LastSeen: time.Now().Add(-time.Hour).UnixMilli()})
	mr.HSet(key, "stale", string(stale))
	mr.HSet(key, "broken", "{not json")

	registrar := NewServiceRegistrar(client, PlayerServiceType, "test", testConfig(), quietLogger())
	registrar.registerService()
	registrar.performCleanup()

	keys, err := mr.HKeys(key)
	require.NoError(t, err)
	assert.Equal(t, []string{registrar.GetServiceID()}, keys)
}
