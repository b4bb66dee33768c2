// player/api/query.go
package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Ftotnem/player-roster/player/roster"
	"github.com/Ftotnem/player-roster/player/service"
	"github.com/Ftotnem/player-roster/shared/models"
)

// parseCriteria reads the optional filter parameters of the list and count endpoints.
func parseCriteria(q url.Values) (roster.Criteria, error) {
	var (
		c   roster.Criteria
		err error
	)
	c.Name = stringParam(q, "name")
	c.Title = stringParam(q, "title")

	if raw := q.Get("race"); raw != "" {
		race, err := models.ParseRace(raw)
		if err != nil {
			return c, fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
		}
		c.Race = models.Some(race)
	}
	if raw := q.Get("profession"); raw != "" {
		profession, err := models.ParseProfession(raw)
		if err != nil {
			return c, fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
		}
		c.Profession = models.Some(profession)
	}
	if c.Banned, err = boolParam(q, "banned"); err != nil {
		return c, err
	}
	if c.After, err = int64Param(q, "after"); err != nil {
		return c, err
	}
	if c.Before, err = int64Param(q, "before"); err != nil {
		return c, err
	}
	if c.MinExperience, err = intParam(q, "minExperience"); err != nil {
		return c, err
	}
	if c.MaxExperience, err = intParam(q, "maxExperience"); err != nil {
		return c, err
	}
	if c.MinLevel, err = intParam(q, "minLevel"); err != nil {
		return c, err
	}
	if c.MaxLevel, err = intParam(q, "maxLevel"); err != nil {
		return c, err
	}
	return c, nil
}

// parseListQuery adds order and paging to the filter parameters.
func parseListQuery(q url.Values) (service.ListQuery, error) {
	criteria, err := parseCriteria(q)
	if err != nil {
		return service.ListQuery{}, err
	}
	order, err := roster.ParseOrder(q.Get("order"))
	if err != nil {
		return service.ListQuery{}, fmt.Errorf("%w: %w", service.ErrInvalidArgument, err)
	}
	pageNumber, err := intParam(q, "pageNumber")
	if err != nil {
		return service.ListQuery{}, err
	}
	pageSize, err := intParam(q, "pageSize")
	if err != nil {
		return service.ListQuery{}, err
	}
	return service.ListQuery{
		Criteria:   criteria,
		Order:      order,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

func stringParam(q url.Values, key string) models.Optional[string] {
	if !q.Has(key) {
		return models.Optional[string]{}
	}
	return models.Some(q.Get(key))
}

func intParam(q url.Values, key string) (models.Optional[int], error) {
	raw := q.Get(key)
	if raw == "" {
		return models.Optional[int]{}, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return models.Optional[int]{}, fmt.Errorf("%w: %s must be an integer, got %q", service.ErrInvalidArgument, key, raw)
	}
	return models.Some(v), nil
}

func int64Param(q url.Values, key string) (models.Optional[int64], error) {
	raw := q.Get(key)
	if raw == "" {
		return models.Optional[int64]{}, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return models.Optional[int64]{}, fmt.Errorf("%w: %s must be epoch milliseconds, got %q", service.ErrInvalidArgument, key, raw)
	}
	return models.Some(v), nil
}

func boolParam(q url.Values, key string) (models.Optional[bool], error) {
	raw := q.Get(key)
	if raw == "" {
		return models.Optional[bool]{}, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return models.Optional[bool]{}, fmt.Errorf("%w: %s must be true or false, got %q", service.ErrInvalidArgument, key, raw)
	}
	return models.Some(v), nil
}
