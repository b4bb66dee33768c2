// shared/registry/constants.go
package registry

const (
	// RedisRegistryHashPrefix is the prefix used for Redis hash keys that store
	// service registration data. The full key format is "services:<serviceType>".
	RedisRegistryHashPrefix = "services:"

	// PlayerServiceType is the type the player service registers under.
	PlayerServiceType = "player-service"
)

func hashKey(serviceType string) string {
	return RedisRegistryHashPrefix + serviceType
}
