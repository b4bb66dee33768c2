// shared/models/player.go
package models

import "time"

// Player represents a player record stored persistently by one of the player stores.
// Level and UntilNextLevel are derived from Experience and never accepted from clients.
type Player struct {
	ID             int64      `bson:"_id" json:"id"`
	Name           string     `bson:"name" json:"name"`
	Title          string     `bson:"title" json:"title"`
	Race           Race       `bson:"race" json:"race"`
	Profession     Profession `bson:"profession" json:"profession"`
	Birthday       int64      `bson:"birthday" json:"birthday"` // epoch milliseconds
	Banned         bool       `bson:"banned" json:"banned"`
	Experience     int        `bson:"experience" json:"experience"`
	Level          int        `bson:"level" json:"level"`
	UntilNextLevel int        `bson:"until_next_level" json:"untilNextLevel"`
}

// BirthdayTime returns the birthday as a UTC time.
func (p Player) BirthdayTime() time.Time {
	return time.UnixMilli(p.Birthday).UTC()
}

// PlayerInput is the body of a create or partial-update request.
// Absent (or null) fields mean "not supplied".
type PlayerInput struct {
	Name       Optional[string]     `json:"name,omitzero"`
	Title      Optional[string]     `json:"title,omitzero"`
	Race       Optional[Race]       `json:"race,omitzero"`
	Profession Optional[Profession] `json:"profession,omitzero"`
	Birthday   Optional[int64]      `json:"birthday,omitzero"`
	Banned     Optional[bool]       `json:"banned,omitzero"`
	Experience Optional[int]        `json:"experience,omitzero"`
}

// IsEmpty reports whether no field was supplied.
func (in PlayerInput) IsEmpty() bool {
	return !in.Name.Set && !in.Title.Set && !in.Race.Set && !in.Profession.Set &&
		!in.Birthday.Set && !in.Banned.Set && !in.Experience.Set
}
