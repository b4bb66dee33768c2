// player/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/Ftotnem/player-roster/player/service"
	"github.com/Ftotnem/player-roster/shared/api"
	"github.com/Ftotnem/player-roster/shared/models"
	"github.com/gorilla/mux"
)

const defaultRequestTimeout = 5 * time.Second

// PlayerAPIHandlers exposes the PlayerService over HTTP.
type PlayerAPIHandlers struct {
	PlayerService  *service.PlayerService
	Logger         *slog.Logger
	RequestTimeout time.Duration
}

// NewPlayerAPIHandlers is the constructor for the API handlers.
func NewPlayerAPIHandlers(ps *service.PlayerService, logger *slog.Logger, requestTimeout time.Duration) *PlayerAPIHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	return &PlayerAPIHandlers{
		PlayerService:  ps,
		Logger:         logger,
		RequestTimeout: requestTimeout,
	}
}

// ListPlayersHandler returns one page of players matching the filters.
// The X-Total-Count header holds the number of matches before paging.
// GET /rest/players
func (pah *PlayerAPIHandlers) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r.URL.Query())
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	result, err := pah.PlayerService.ListPlayers(ctx, query)
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}
	w.Header().Set(api.TotalCountHeader, strconv.Itoa(result.Total))
	_ = api.WriteJSON(w, http.StatusOK, result.Players)
}

// CountPlayersHandler returns the number of players matching the filters.
// GET /rest/players/count
func (pah *PlayerAPIHandlers) CountPlayersHandler(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	count, err := pah.PlayerService.CountPlayers(ctx, criteria)
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}
	_ = api.WriteJSON(w, http.StatusOK, count)
}

// CreatePlayerHandler creates a player from a full body.
// POST /rest/players
func (pah *PlayerAPIHandlers) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	var in models.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		api.WriteErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	created, err := pah.PlayerService.CreatePlayer(ctx, in)
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}
	_ = api.WriteJSON(w, http.StatusOK, created)
}

// GetPlayerHandler returns a single player.
// GET /rest/players/{id}
func (pah *PlayerAPIHandlers) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	player, err := pah.PlayerService.GetPlayer(ctx, id)
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}
	_ = api.WriteJSON(w, http.StatusOK, player)
}

// UpdatePlayerHandler applies a partial update.
// POST /rest/players/{id} (PATCH is accepted too)
func (pah *PlayerAPIHandlers) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}

	var patch models.PlayerInput
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.WriteErrorDetails(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	updated, err := pah.PlayerService.UpdatePlayer(ctx, id, patch)
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}
	_ = api.WriteJSON(w, http.StatusOK, updated)
}

// DeletePlayerHandler removes a player.
// DELETE /rest/players/{id}
func (pah *PlayerAPIHandlers) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParsePlayerID(mux.Vars(r)["id"])
	if err != nil {
		pah.writeServiceError(w, err)
		return
	}

	ctx, cancel := pah.requestContext(r)
	defer cancel()

	if err := pah.PlayerService.DeletePlayer(ctx, id); err != nil {
		pah.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (pah *PlayerAPIHandlers) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), pah.RequestTimeout)
}

// writeServiceError maps service-layer errors to HTTP status codes.
func (pah *PlayerAPIHandlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		api.WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, service.ErrValidation):
		pah.Logger.Warn("rejected player request", slog.String("error", err.Error()))
		api.WriteBadRequest(w, err.Error())
	default:
		pah.Logger.Error("player request failed", slog.String("error", err.Error()))
		api.WriteInternalServerError(w, "Failed to process player request")
	}
}

// RegisterRoutes registers all API endpoints for the player service.
func (pah *PlayerAPIHandlers) RegisterRoutes(router *mux.Router) {
	rest := router.PathPrefix("/rest").Subrouter()
	// count must be registered before {id} so it is not captured as an id.
	rest.HandleFunc("/players/count", pah.CountPlayersHandler).Methods(http.MethodGet)
	rest.HandleFunc("/players", pah.ListPlayersHandler).Methods(http.MethodGet)
	rest.HandleFunc("/players", pah.CreatePlayerHandler).Methods(http.MethodPost)
	rest.HandleFunc("/players/{id}", pah.GetPlayerHandler).Methods(http.MethodGet)
	rest.HandleFunc("/players/{id}", pah.UpdatePlayerHandler).Methods(http.MethodPost, http.MethodPatch)
	rest.HandleFunc("/players/{id}", pah.DeletePlayerHandler).Methods(http.MethodDelete)
}
