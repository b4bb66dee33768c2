// player/service/player_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Ftotnem/player-roster/player/roster"
	"github.com/Ftotnem/player-roster/player/store"
	"github.com/Ftotnem/player-roster/shared/models"
)

// ListQuery combines filter criteria, ordering and paging for ListPlayers.
type ListQuery struct {
	Criteria   roster.Criteria
	Order      roster.Order
	PageNumber models.Optional[int]
	PageSize   models.Optional[int]
}

// ListResult is one page of players plus the number of players matching the criteria.
type ListResult struct {
	Players []models.Player
	Total   int
}

// PlayerService encapsulates the business logic for players.
type PlayerService struct {
	playerStore store.PlayerStore
	logger      *slog.Logger
	// writeMu orders read-modify-write sequences issued through this instance.
	writeMu sync.Mutex
}

// NewPlayerService creates a new PlayerService instance.
func NewPlayerService(ps store.PlayerStore, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerService{
		playerStore: ps,
		logger:      logger,
	}
}

// ParsePlayerID converts a path segment into a player id.
// Unparsable and non-positive values are ErrInvalidArgument.
func ParsePlayerID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: player id %q is not a number", ErrInvalidArgument, raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: player id %d must be positive", ErrInvalidArgument, id)
	}
	return id, nil
}

// CreatePlayer validates the candidate, derives its level and persists it.
func (ps *PlayerService) CreatePlayer(ctx context.Context, candidate models.PlayerInput) (*models.Player, error) {
	if !roster.IsPlayerValid(candidate) {
		return nil, invalidField("", "player must have a valid name, title, experience and birthday")
	}

	player := &models.Player{
		Name:       candidate.Name.Value,
		Title:      candidate.Title.Value,
		Race:       candidate.Race.Value,
		Profession: candidate.Profession.Value,
		Birthday:   candidate.Birthday.Value,
		Banned:     candidate.Banned.OrElse(false),
		Experience: candidate.Experience.Value,
	}
	roster.ApplyLevel(player)

	saved, err := ps.playerStore.Save(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("service failed to create player: %w", err)
	}
	ps.logger.Info("player created", slog.Int64("id", saved.ID), slog.String("name", saved.Name))
	return saved, nil
}

// GetPlayer retrieves a player by id.
func (ps *PlayerService) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: player id %d must be positive", ErrInvalidArgument, id)
	}
	player, err := ps.playerStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("service failed to get player %d: %w", id, err)
	}
	return player, nil
}

// UpdatePlayer applies the supplied fields of patch to the stored player.
// Name, title, birthday and experience are validated one by one and the first
// invalid field aborts the update without touching the store.
// Level is recomputed whenever banned or experience is supplied.
func (ps *PlayerService) UpdatePlayer(ctx context.Context, id int64, patch models.PlayerInput) (*models.Player, error) {
	ps.writeMu.Lock()
	defer ps.writeMu.Unlock()

	player, err := ps.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	recompute := false
	if name, ok := patch.Name.Get(); ok {
		if !roster.ValidName(name) {
			return nil, invalidField("name", fmt.Sprintf("must be 1 to %d characters", roster.MaxNameLength))
		}
		player.Name = name
	}
	if title, ok := patch.Title.Get(); ok {
		if !roster.ValidTitle(title) {
			return nil, invalidField("title", fmt.Sprintf("must be 1 to %d characters", roster.MaxTitleLength))
		}
		player.Title = title
	}
	if race, ok := patch.Race.Get(); ok && race != "" {
		player.Race = race
	}
	if profession, ok := patch.Profession.Get(); ok && profession != "" {
		player.Profession = profession
	}
	if birthday, ok := patch.Birthday.Get(); ok {
		if !roster.ValidBirthday(birthday) {
			return nil, invalidField("birthday", "must fall between the years 2000 and 3000")
		}
		player.Birthday = birthday
	}
	if banned, ok := patch.Banned.Get(); ok {
		player.Banned = banned
		recompute = true
	}
	if experience, ok := patch.Experience.Get(); ok {
		if !roster.ValidExperience(experience) {
			return nil, invalidField("experience", fmt.Sprintf("must be between %d and %d", roster.MinExperience, roster.MaxExperience))
		}
		player.Experience = experience
		recompute = true
	}
	if recompute {
		roster.ApplyLevel(player)
	}

	saved, err := ps.playerStore.Save(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("service failed to update player %d: %w", id, err)
	}
	ps.logger.Info("player updated", slog.Int64("id", id), slog.Bool("empty_patch", patch.IsEmpty()))
	return saved, nil
}

// DeletePlayer removes a player.
func (ps *PlayerService) DeletePlayer(ctx context.Context, id int64) error {
	ps.writeMu.Lock()
	defer ps.writeMu.Unlock()

	if _, err := ps.GetPlayer(ctx, id); err != nil {
		return err
	}
	if err := ps.playerStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrPlayerNotFound) {
			return fmt.Errorf("%w: %d", ErrPlayerNotFound, id)
		}
		return fmt.Errorf("service failed to delete player %d: %w", id, err)
	}
	ps.logger.Info("player deleted", slog.Int64("id", id))
	return nil
}

// ListPlayers filters, sorts and pages the stored players, in that order.
func (ps *PlayerService) ListPlayers(ctx context.Context, q ListQuery) (*ListResult, error) {
	matched, err := ps.filtered(ctx, q.Criteria)
	if err != nil {
		return nil, err
	}
	sorted := roster.SortPlayers(matched, q.Order)
	page, err := roster.Paginate(sorted, q.PageNumber, q.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return &ListResult{Players: page, Total: len(matched)}, nil
}

// CountPlayers returns how many stored players match the criteria.
func (ps *PlayerService) CountPlayers(ctx context.Context, criteria roster.Criteria) (int, error) {
	matched, err := ps.filtered(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

func (ps *PlayerService) filtered(ctx context.Context, criteria roster.Criteria) ([]models.Player, error) {
	all, err := ps.playerStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service failed to list players: %w", err)
	}
	return roster.FilterPlayers(all, criteria), nil
}
