// player/store/redis_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Ftotnem/player-roster/shared/models"
	redisu "github.com/Ftotnem/player-roster/shared/redis"
	"github.com/redis/go-redis/v9"
)

// RedisPlayerStore keeps each player as a JSON string plus an id index sorted set.
type RedisPlayerStore struct {
	client redis.UniversalClient
}

// NewRedisPlayerStore creates a new RedisPlayerStore on an already connected client.
func NewRedisPlayerStore(client redis.UniversalClient) *RedisPlayerStore {
	return &RedisPlayerStore{
		client: client,
	}
}

var _ PlayerStore = (*RedisPlayerStore)(nil)

// FindAll walks the id index and fetches every player in one MGET.
func (rs *RedisPlayerStore) FindAll(ctx context.Context) ([]models.Player, error) {
	members, err := rs.client.ZRange(ctx, redisu.PlayerIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read player index: %w", err)
	}
	players := make([]models.Player, 0, len(members))
	if len(members) == 0 {
		return players, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt player index member %q: %w", member, err)
		}
		keys[i] = redisu.PlayerKey(id)
	}

	values, err := rs.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry without a document; skip it.
			continue
		}
		var p models.Player
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to decode player at %s: %w", keys[i], err)
		}
		players = append(players, p)
	}
	return players, nil
}

// FindByID retrieves a player by id.
func (rs *RedisPlayerStore) FindByID(ctx context.Context, id int64) (*models.Player, error) {
	data, err := rs.client.Get(ctx, redisu.PlayerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	var p models.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode player %d: %w", id, err)
	}
	return &p, nil
}

// Save writes the player and its index entry in one transaction, drawing a new id from the sequence when p.ID is zero.
func (rs *RedisPlayerStore) Save(ctx context.Context, p *models.Player) (*models.Player, error) {
	if p.ID == 0 {
		id, err := rs.client.Incr(ctx, redisu.PlayerSequenceKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to allocate player id: %w", err)
		}
		p.ID = id
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player %d: %w", p.ID, err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, redisu.PlayerKey(p.ID), data, 0)
	pipe.ZAdd(ctx, redisu.PlayerIndexKey, redis.Z{Score: float64(p.ID), Member: strconv.FormatInt(p.ID, 10)})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save player %d: %w", p.ID, err)
	}
	saved := *p
	return &saved, nil
}

// Delete removes the player and its index entry.
func (rs *RedisPlayerStore) Delete(ctx context.Context, id int64) error {
	pipe := rs.client.TxPipeline()
	del := pipe.Del(ctx, redisu.PlayerKey(id))
	pipe.ZRem(ctx, redisu.PlayerIndexKey, strconv.FormatInt(id, 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// Close is a no-op; the client is owned by main.
func (rs *RedisPlayerStore) Close() error { return nil }
