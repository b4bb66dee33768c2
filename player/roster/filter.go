package roster

import (
	"strings"

	"github.com/Ftotnem/player-roster/shared/models"
)

// Criteria is a set of independent, optional predicates. A zero Criteria matches everything.
type Criteria struct {
	Name          models.Optional[string] // substring of name, case-sensitive
	Title         models.Optional[string] // substring of title, case-sensitive
	Race          models.Optional[models.Race]
	Profession    models.Optional[models.Profession]
	Banned        models.Optional[bool]
	After         models.Optional[int64] // birthday >= After (epoch ms)
	Before        models.Optional[int64] // birthday <= Before (epoch ms)
	MinExperience models.Optional[int]
	MaxExperience models.Optional[int]
	MinLevel      models.Optional[int]
	MaxLevel      models.Optional[int]
}

// FilterPlayers returns the players matching every supplied criterion, in input order.
// The input slice is not modified.
func FilterPlayers(all []models.Player, c Criteria) []models.Player {
	matched := make([]models.Player, 0, len(all))
	for _, p := range all {
		if c.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

// Matches reports whether p satisfies all supplied criteria.
func (c Criteria) Matches(p models.Player) bool {
	if c.Name.Set && !strings.Contains(p.Name, c.Name.Value) {
		return false
	}
	if c.Title.Set && !strings.Contains(p.Title, c.Title.Value) {
		return false
	}
	if c.Race.Set && p.Race != c.Race.Value {
		return false
	}
	if c.Profession.Set && p.Profession != c.Profession.Value {
		return false
	}
	if c.Banned.Set && p.Banned != c.Banned.Value {
		return false
	}
	if c.After.Set && p.Birthday < c.After.Value {
		return false
	}
	if c.Before.Set && p.Birthday > c.Before.Value {
		return false
	}
	if c.MinExperience.Set && p.Experience < c.MinExperience.Value {
		return false
	}
	if c.MaxExperience.Set && p.Experience > c.MaxExperience.Value {
		return false
	}
	if c.MinLevel.Set && p.Level < c.MinLevel.Value {
		return false
	}
	if c.MaxLevel.Set && p.Level > c.MaxLevel.Value {
		return false
	}
	return true
}
