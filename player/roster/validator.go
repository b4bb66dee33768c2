// Package roster holds the pure rules of the player roster: field validation,
// level derivation, filtering, ordering and paging. Nothing here performs I/O.
package roster

import (
	"github.com/go-playground/validator/v10"

	"github.com/Ftotnem/player-roster/shared/models"
)

const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MinExperience  = 0
	MaxExperience  = 10_000_000

	// Birthdays must fall strictly between 2000-01-01 and 3000-01-01 UTC, in epoch milliseconds.
	BirthdayLowerBound int64 = 946_684_800_000
	BirthdayUpperBound int64 = 32_503_680_000_000
)

// Field rules shared by create (struct tags) and partial update (Var).
const (
	nameRules       = "required,min=1,max=12"
	titleRules      = "required,min=1,max=30"
	experienceRules = "gte=0,lte=10000000"
	birthdayRules   = "gt=946684800000,lt=32503680000000"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// candidate is a create body flattened for struct validation.
// A nil pointer is a field the client did not send.
type candidate struct {
	Name       *string `validate:"required,min=1,max=12"`
	Title      *string `validate:"required,min=1,max=30"`
	Experience *int    `validate:"required,gte=0,lte=10000000"`
	Birthday   *int64  `validate:"required,gt=946684800000,lt=32503680000000"`
}

func optionalPtr[T any](o models.Optional[T]) *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// IsPlayerValid reports whether a create candidate satisfies every field rule.
// Race, profession and banned are not checked here.
func IsPlayerValid(in models.PlayerInput) bool {
	c := candidate{
		Name:       optionalPtr(in.Name),
		Title:      optionalPtr(in.Title),
		Experience: optionalPtr(in.Experience),
		Birthday:   optionalPtr(in.Birthday),
	}
	return validate.Struct(c) == nil
}

// ValidName reports whether name is 1 to MaxNameLength characters.
func ValidName(name string) bool {
	return validate.Var(name, nameRules) == nil
}

// ValidTitle reports whether title is 1 to MaxTitleLength characters.
func ValidTitle(title string) bool {
	return validate.Var(title, titleRules) == nil
}

// ValidExperience reports whether experience is within [MinExperience, MaxExperience].
func ValidExperience(experience int) bool {
	return validate.Var(experience, experienceRules) == nil
}

// ValidBirthday checks an epoch-millisecond birthday.
func ValidBirthday(millis int64) bool {
	return validate.Var(millis, birthdayRules) == nil
}
