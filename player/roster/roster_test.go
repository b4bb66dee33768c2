package roster

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ftotnem/player-roster/shared/models"
)

func millis(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func validCandidate() models.PlayerInput {
	return models.PlayerInput{
		Name:       models.Some("Aragorn"),
		Title:      models.Some("King of Gondor"),
		Race:       models.Some(models.RaceHuman),
		Profession: models.Some(models.ProfessionWarrior),
		Birthday:   models.Some(millis(2010, time.March, 1)),
		Experience: models.Some(1500),
	}
}

func numbered(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: int64(i + 1), Name: fmt.Sprintf("p%d", i)}
	}
	return players
}

func ids(players []models.Player) []int64 {
	out := make([]int64, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func TestCurrentLevelExamples(t *testing.T) {
	assert.Equal(t, 0, CurrentLevel(0))
	assert.Equal(t, 100, NextLevelExperience(0, 0))

	assert.Equal(t, 1, CurrentLevel(100))
	assert.Equal(t, 200, NextLevelExperience(1, 100))

	assert.Equal(t, 0, CurrentLevel(99))
	assert.Equal(t, 1, CurrentLevel(299))
	assert.Equal(t, 2, CurrentLevel(300))
	assert.Equal(t, 446, CurrentLevel(MaxExperience))
}

func TestCurrentLevelMonotonic(t *testing.T) {
	prev := CurrentLevel(0)
	for e := 1; e <= 200_000; e += 7 {
		level := CurrentLevel(e)
		require.GreaterOrEqual(t, level, prev, "experience %d", e)
		require.GreaterOrEqual(t, NextLevelExperience(level, e), 0, "experience %d", e)
		prev = level
	}
}

func TestApplyLevel(t *testing.T) {
	p := models.Player{Experience: 1500}
	ApplyLevel(&p)
	assert.Equal(t, 5, p.Level)
	assert.Equal(t, 600, p.UntilNextLevel)
}

func TestIsPlayerValid(t *testing.T) {
	assert.True(t, IsPlayerValid(validCandidate()))

	tests := map[string]func(in *models.PlayerInput){
		"missing name":         func(in *models.PlayerInput) { in.Name = models.Optional[string]{} },
		"empty name":           func(in *models.PlayerInput) { in.Name = models.Some("") },
		"name of 13":           func(in *models.PlayerInput) { in.Name = models.Some(strings.Repeat("n", 13)) },
		"missing title":        func(in *models.PlayerInput) { in.Title = models.Optional[string]{} },
		"title of 31":          func(in *models.PlayerInput) { in.Title = models.Some(strings.Repeat("t", 31)) },
		"missing experience":   func(in *models.PlayerInput) { in.Experience = models.Optional[int]{} },
		"negative experience":  func(in *models.PlayerInput) { in.Experience = models.Some(-1) },
		"experience too large": func(in *models.PlayerInput) { in.Experience = models.Some(MaxExperience + 1) },
		"missing birthday":     func(in *models.PlayerInput) { in.Birthday = models.Optional[int64]{} },
		"birthday in 1999":     func(in *models.PlayerInput) { in.Birthday = models.Some(millis(1999, time.June, 1)) },
		"birthday at 2000":     func(in *models.PlayerInput) { in.Birthday = models.Some(millis(2000, time.January, 1)) },
		"birthday at 3000":     func(in *models.PlayerInput) { in.Birthday = models.Some(millis(3000, time.January, 1)) },
		"negative birthday":    func(in *models.PlayerInput) { in.Birthday = models.Some(int64(-1)) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := validCandidate()
			mutate(&in)
			assert.False(t, IsPlayerValid(in))
		})
	}
}

func TestFieldBoundaries(t *testing.T) {
	assert.True(t, ValidName(strings.Repeat("n", 12)))
	assert.False(t, ValidName(strings.Repeat("n", 13)))
	assert.True(t, ValidName("Éowyn"))
	assert.True(t, ValidTitle(strings.Repeat("t", 30)))
	assert.True(t, ValidExperience(0))
	assert.True(t, ValidExperience(MaxExperience))
	assert.False(t, ValidExperience(MaxExperience+1))
	assert.True(t, ValidBirthday(millis(2000, time.January, 1)+1))
	assert.True(t, ValidBirthday(millis(3000, time.January, 1)-1))
	assert.False(t, ValidBirthday(millis(3000, time.January, 1)))
}

func TestValidationRulesAgree(t *testing.T) {
	assert.Equal(t, millis(2000, time.January, 1), BirthdayLowerBound)
	assert.Equal(t, millis(3000, time.January, 1), BirthdayUpperBound)

	assert.Equal(t, fmt.Sprintf("required,min=1,max=%d", MaxNameLength), nameRules)
	assert.Equal(t, fmt.Sprintf("required,min=1,max=%d", MaxTitleLength), titleRules)
	assert.Equal(t, fmt.Sprintf("gte=%d,lte=%d", MinExperience, MaxExperience), experienceRules)
	assert.Equal(t, fmt.Sprintf("gt=%d,lt=%d", BirthdayLowerBound, BirthdayUpperBound), birthdayRules)

	typ := reflect.TypeOf(candidate{})
	for field, rules := range map[string]string{
		"Name":       nameRules,
		"Title":      titleRules,
		"Experience": "required," + experienceRules,
		"Birthday":   "required," + birthdayRules,
	} {
		f, ok := typ.FieldByName(field)
		require.True(t, ok, field)
		assert.Equal(t, rules, f.Tag.Get("validate"), field)
	}
}

func TestIsPlayerValidAcceptsZeroExperience(t *testing.T) {
	in := validCandidate()
	in.Experience = models.Some(0)
	assert.True(t, IsPlayerValid(in))

	in.Name = models.Some("Éowyn")
	assert.True(t, IsPlayerValid(in))
}

func TestFilterPlayersKeepsInputOrder(t *testing.T) {
	all := []models.Player{
		{ID: 7, Name: "Sam", Experience: 40},
		{ID: 2, Name: "Saruman", Experience: 9000},
		{ID: 9, Name: "Frodo", Experience: 60},
		{ID: 4, Name: "Samwise", Experience: 50},
		{ID: 1, Name: "Pippin", Experience: 10},
	}

	assert.Equal(t, []int64{7, 2, 4}, ids(FilterPlayers(all, Criteria{Name: models.Some("Sa")})))
	assert.Equal(t, []int64{7, 9, 4}, ids(FilterPlayers(all, Criteria{MinExperience: models.Some(40), MaxExperience: models.Some(60)})))
	assert.Equal(t, []int64{7, 2, 9, 4, 1}, ids(FilterPlayers(all, Criteria{})))
}

func TestFilterPlayersLevelRange(t *testing.T) {
	var all []models.Player
	for i, exp := range []int{1500, 0, 2100, 1600, 100, 1499} {
		p := models.Player{ID: int64(i + 1), Experience: exp}
		ApplyLevel(&p)
		all = append(all, p)
	}

	got := FilterPlayers(all, Criteria{MinLevel: models.Some(5), MaxLevel: models.Some(5)})
	assert.Equal(t, []int64{1, 4}, ids(got))
	for _, p := range got {
		assert.Equal(t, 5, p.Level)
	}
}

func TestFilterPlayersCriteria(t *testing.T) {
	all := []models.Player{
		{ID: 1, Name: "Gimli", Title: "Lord of the Glittering Caves", Race: models.RaceDwarf, Profession: models.ProfessionWarrior, Birthday: millis(2005, time.May, 5), Experience: 500},
		{ID: 2, Name: "Legolas", Title: "Prince of Mirkwood", Race: models.RaceElf, Profession: models.ProfessionRogue, Birthday: millis(2010, time.May, 5), Banned: true, Experience: 900},
		{ID: 3, Name: "Gandalf", Title: "the Grey", Race: models.RaceHuman, Profession: models.ProfessionSorcerer, Birthday: millis(2020, time.May, 5), Experience: 9000},
	}
	for i := range all {
		ApplyLevel(&all[i])
	}

	tests := []struct {
		name     string
		criteria Criteria
		want     []int64
	}{
		{"no criteria", Criteria{}, []int64{1, 2, 3}},
		{"name substring", Criteria{Name: models.Some("G")}, []int64{1, 3}},
		{"name is case sensitive", Criteria{Name: models.Some("gimli")}, []int64{}},
		{"title substring", Criteria{Title: models.Some("of")}, []int64{1, 2}},
		{"race", Criteria{Race: models.Some(models.RaceElf)}, []int64{2}},
		{"profession", Criteria{Profession: models.Some(models.ProfessionSorcerer)}, []int64{3}},
		{"banned false", Criteria{Banned: models.Some(false)}, []int64{1, 3}},
		{"after is inclusive", Criteria{After: models.Some(millis(2010, time.May, 5))}, []int64{2, 3}},
		{"before is inclusive", Criteria{Before: models.Some(millis(2010, time.May, 5))}, []int64{1, 2}},
		{"experience range", Criteria{MinExperience: models.Some(500), MaxExperience: models.Some(900)}, []int64{1, 2}},
		{"combined", Criteria{Name: models.Some("G"), MinExperience: models.Some(1000)}, []int64{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterPlayers(all, tt.criteria)))
		})
	}
	assert.Equal(t, []int64{1, 2, 3}, ids(all), "input untouched")
}

func TestSortPlayers(t *testing.T) {
	in := []models.Player{
		{ID: 3, Name: "b", Experience: 10, Birthday: 300},
		{ID: 1, Name: "a", Experience: 30, Birthday: 200},
		{ID: 2, Name: "B", Experience: 10, Birthday: 100},
	}

	assert.Equal(t, []int64{3, 1, 2}, ids(SortPlayers(in, OrderNone)))
	assert.Equal(t, []int64{1, 2, 3}, ids(SortPlayers(in, OrderByID)))
	assert.Equal(t, []int64{2, 1, 3}, ids(SortPlayers(in, OrderByName)), "byte order puts upper case first")
	assert.Equal(t, []int64{3, 2, 1}, ids(SortPlayers(in, OrderByExperience)), "ties keep input order")
	assert.Equal(t, []int64{2, 1, 3}, ids(SortPlayers(in, OrderByBirthday)))
	assert.Equal(t, []int64{3, 1, 2}, ids(in), "input untouched")

	once := SortPlayers(in, OrderByID)
	assert.Equal(t, once, SortPlayers(once, OrderByID))
}

func TestParseOrder(t *testing.T) {
	for raw, want := range map[string]Order{
		"":           OrderNone,
		"ID":         OrderByID,
		"name":       OrderByName,
		"Experience": OrderByExperience,
		"BIRTHDAY":   OrderByBirthday,
	} {
		got, err := ParseOrder(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseOrder("LEVEL")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestPaginate(t *testing.T) {
	ten := numbered(10)

	page, err := Paginate(ten, models.Some(1), models.Some(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5, 6}, ids(page))

	page, err = Paginate(ten, models.Optional[int]{}, models.Optional[int]{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(page), "defaults to page 0 of size 3")

	page, err = Paginate(ten, models.Some(3), models.Some(3))
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, ids(page), "last page is clipped")

	page, err = Paginate(numbered(3), models.Some(5), models.Some(3))
	require.NoError(t, err)
	assert.Empty(t, page)

	page, err = Paginate(ten, models.Some(0), models.Some(0))
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPaginateRejectsNegative(t *testing.T) {
	_, err := Paginate(numbered(3), models.Some(-1), models.Some(3))
	assert.ErrorIs(t, err, ErrInvalidPaging)

	_, err = Paginate(numbered(3), models.Some(0), models.Some(-3))
	assert.ErrorIs(t, err, ErrInvalidPaging)
}
