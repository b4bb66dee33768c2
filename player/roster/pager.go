package roster

import (
	"errors"
	"fmt"

	"github.com/Ftotnem/player-roster/shared/models"
)

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

var ErrInvalidPaging = errors.New("invalid paging")

// Paginate returns the zero-based page of players. A page starting past the end
// of the list is empty. Negative page numbers or sizes are rejected.
func Paginate(players []models.Player, pageNumber, pageSize models.Optional[int]) ([]models.Player, error) {
	number := pageNumber.OrElse(DefaultPageNumber)
	size := pageSize.OrElse(DefaultPageSize)
	if number < 0 {
		return nil, fmt.Errorf("%w: page number %d is negative", ErrInvalidPaging, number)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: page size %d is negative", ErrInvalidPaging, size)
	}

	if size == 0 || number > len(players)/size {
		return []models.Player{}, nil
	}
	from := number * size
	if from >= len(players) {
		return []models.Player{}, nil
	}
	to := min(from+size, len(players))
	return players[from:to], nil
}
