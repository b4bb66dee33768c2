// player/store/memory_store.go
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/Ftotnem/player-roster/shared/models"
)

// MemoryPlayerStore keeps players in process memory.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	players map[int64]models.Player
	lastID  int64
}

// NewMemoryPlayerStore creates an empty in-memory store.
func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{
		players: make(map[int64]models.Player),
	}
}

var _ PlayerStore = (*MemoryPlayerStore)(nil)

// FindAll returns a copy of every player ordered by id.
func (ms *MemoryPlayerStore) FindAll(ctx context.Context) ([]models.Player, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	all := make([]models.Player, 0, len(ms.players))
	for _, p := range ms.players {
		all = append(all, p)
	}
	slices.SortFunc(all, func(a, b models.Player) int { return cmp.Compare(a.ID, b.ID) })
	return all, nil
}

// FindByID returns a copy of the player with the given id.
func (ms *MemoryPlayerStore) FindByID(ctx context.Context, id int64) (*models.Player, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	p, ok := ms.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

// Save stores a copy of p, assigning the next id when p.ID is zero.
func (ms *MemoryPlayerStore) Save(ctx context.Context, p *models.Player) (*models.Player, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if p.ID == 0 {
		ms.lastID++
		p.ID = ms.lastID
	} else if p.ID > ms.lastID {
		ms.lastID = p.ID
	}
	ms.players[p.ID] = *p
	saved := *p
	return &saved, nil
}

// Delete removes the player with the given id.
func (ms *MemoryPlayerStore) Delete(ctx context.Context, id int64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(ms.players, id)
	return nil
}

// Close is a no-op.
func (ms *MemoryPlayerStore) Close() error { return nil }
