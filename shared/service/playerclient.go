// shared/service/playerclient.go
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ftotnem/player-roster/shared/api"
	"github.com/Ftotnem/player-roster/shared/models"
)

const playersPath = "/rest/players"

// PlayerServiceClient is a client for the player service REST API.
type PlayerServiceClient struct {
	apiClient *api.Client
}

// NewPlayerClient creates a player service client for baseURL.
// A nil httpClient means api.NewDefaultHTTPClient.
func NewPlayerClient(baseURL string, httpClient *http.Client) *PlayerServiceClient {
	return &PlayerServiceClient{
		apiClient: api.NewClient(baseURL, httpClient),
	}
}

// BaseURL returns the service URL the client talks to.
func (c *PlayerServiceClient) BaseURL() string {
	return c.apiClient.BaseURL()
}

// ListPlayers fetches one page of players. query carries the filter, order and
// paging parameters exactly as the list endpoint accepts them.
func (c *PlayerServiceClient) ListPlayers(ctx context.Context, query url.Values) ([]models.Player, error) {
	var players []models.Player
	if err := c.apiClient.Get(ctx, playersPath, query, &players); err != nil {
		return nil, fmt.Errorf("failed to list players from player service: %w", err)
	}
	return players, nil
}

// CountPlayers returns how many players match the filter parameters in query.
func (c *PlayerServiceClient) CountPlayers(ctx context.Context, query url.Values) (int, error) {
	var count int
	if err := c.apiClient.Get(ctx, playersPath+"/count", query, &count); err != nil {
		return 0, fmt.Errorf("failed to count players from player service: %w", err)
	}
	return count, nil
}

// GetPlayer fetches a player by id. A missing player is api.ErrNotFound.
func (c *PlayerServiceClient) GetPlayer(ctx context.Context, id int64) (*models.Player, error) {
	player := &models.Player{}
	if err := c.apiClient.Get(ctx, playerPath(id), nil, player); err != nil {
		return nil, fmt.Errorf("failed to get player %d from player service: %w", id, err)
	}
	return player, nil
}

// CreatePlayer creates a player and returns it with its assigned id and level.
func (c *PlayerServiceClient) CreatePlayer(ctx context.Context, in models.PlayerInput) (*models.Player, error) {
	player := &models.Player{}
	if err := c.apiClient.Post(ctx, playersPath, in, player); err != nil {
		return nil, fmt.Errorf("failed to create player via player service: %w", err)
	}
	return player, nil
}

// UpdatePlayer applies the supplied fields of patch to player id.
func (c *PlayerServiceClient) UpdatePlayer(ctx context.Context, id int64, patch models.PlayerInput) (*models.Player, error) {
	player := &models.Player{}
	if err := c.apiClient.Patch(ctx, playerPath(id), patch, player); err != nil {
		return nil, fmt.Errorf("failed to update player %d via player service: %w", id, err)
	}
	return player, nil
}

// DeletePlayer removes player id.
func (c *PlayerServiceClient) DeletePlayer(ctx context.Context, id int64) error {
	if err := c.apiClient.Delete(ctx, playerPath(id)); err != nil {
		return fmt.Errorf("failed to delete player %d via player service: %w", id, err)
	}
	return nil
}

func playerPath(id int64) string {
	return playersPath + "/" + strconv.FormatInt(id, 10)
}
