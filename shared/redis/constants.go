// shared/redis/constants.go
package redis

import "fmt"

// Every player key shares the {roster} hash tag so that multi-key commands and
// MULTI/EXEC stay within one slot on a Redis Cluster.
const (
	PlayerKeyPrefix   = "players:{roster}:"    // JSON document per player: players:{roster}:<id>
	PlayerIndexKey    = "players:{roster}:ids" // sorted set of ids, score = id
	PlayerSequenceKey = "players:{roster}:seq" // INCR counter for new ids
)

// PlayerKey returns the key holding the player with the given id.
func PlayerKey(id int64) string {
	return fmt.Sprintf("%s%d", PlayerKeyPrefix, id)
}
