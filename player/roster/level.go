// player/roster/level.go
package roster

import (
	"math"

	"github.com/Ftotnem/player-roster/shared/models"
)

// CurrentLevel derives the level reached with the given experience:
// floor((sqrt(2500 + 200*experience) - 50) / 100).
func CurrentLevel(experience int) int {
	root := math.Sqrt(float64(2500+200*int64(experience))) - 50
	return int(root / 100)
}

// NextLevelExperience returns the experience still needed to reach level+1.
// level must be CurrentLevel(experience).
func NextLevelExperience(level, experience int) int {
	return 50*(level+1)*(level+2) - experience
}

// ApplyLevel recomputes the derived fields of p from its experience.
func ApplyLevel(p *models.Player) {
	p.Level = CurrentLevel(p.Experience)
	p.UntilNextLevel = NextLevelExperience(p.Level, p.Experience)
}
