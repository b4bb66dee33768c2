package roster

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Ftotnem/player-roster/shared/models"
)

var ErrUnknownOrder = errors.New("unknown order")

// Order selects the key players are sorted by. Every order is ascending.
type Order int

const (
	OrderNone Order = iota
	OrderByID
	OrderByName
	OrderByExperience
	OrderByBirthday
)

func (o Order) String() string {
	switch o {
	case OrderNone:
		return ""
	case OrderByID:
		return "ID"
	case OrderByName:
		return "NAME"
	case OrderByExperience:
		return "EXPERIENCE"
	case OrderByBirthday:
		return "BIRTHDAY"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps a request value to an Order. The empty string is OrderNone.
func ParseOrder(s string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return OrderNone, nil
	case "ID":
		return OrderByID, nil
	case "NAME":
		return OrderByName, nil
	case "EXPERIENCE":
		return OrderByExperience, nil
	case "BIRTHDAY":
		return OrderByBirthday, nil
	}
	return OrderNone, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// SortPlayers returns a new slice ordered by o. Ties keep their input order,
// and OrderNone keeps the input order entirely.
func SortPlayers(players []models.Player, o Order) []models.Player {
	sorted := slices.Clone(players)
	compare := comparator(o)
	if compare == nil {
		return sorted
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}

func comparator(o Order) func(a, b models.Player) int {
	switch o {
	case OrderByID:
		return func(a, b models.Player) int { return cmp.Compare(a.ID, b.ID) }
	case OrderByName:
		return func(a, b models.Player) int { return strings.Compare(a.Name, b.Name) }
	case OrderByExperience:
		return func(a, b models.Player) int { return cmp.Compare(a.Experience, b.Experience) }
	case OrderByBirthday:
		return func(a, b models.Player) int { return cmp.Compare(a.Birthday, b.Birthday) }
	case OrderNone:
		return nil
	}
	return nil
}
