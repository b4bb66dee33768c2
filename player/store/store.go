// player/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/Ftotnem/player-roster/shared/models"
)

// ErrPlayerNotFound is returned by every PlayerStore when no player has the requested id.
var ErrPlayerNotFound = errors.New("player not found")

// PlayerStore is the persistence contract the player service depends on.
// FindAll returns players ordered by id. Save assigns a fresh id when p.ID is zero
// and writes it back into p.
type PlayerStore interface {
	FindAll(ctx context.Context) ([]models.Player, error)
	FindByID(ctx context.Context, id int64) (*models.Player, error)
	Save(ctx context.Context, p *models.Player) (*models.Player, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
