package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownRace       = errors.New("unknown race")
	ErrUnknownProfession = errors.New("unknown profession")
)

// Race is one of a closed set of player races.
type Race string

const (
	RaceHuman        Race = "HUMAN"
	RaceElf          Race = "ELF"
	RaceDwarf        Race = "DWARF"
	RaceGiant        Race = "GIANT"
	RaceOrc          Race = "ORC"
	RaceHobbit       Race = "HOBBIT"
	RaceHumanElfMule Race = "HUMAN_ELF_MULE"
	RaceElfHumanMule Race = "ELF_HUMAN_MULE"
	RaceGiantElf     Race = "GIANT_ELF"
	RaceHobbitOrc    Race = "HOBBIT_ORC"
)

// Races lists every valid Race in declaration order.
var Races = []Race{
	RaceHuman, RaceElf, RaceDwarf, RaceGiant, RaceOrc,
	RaceHobbit, RaceHumanElfMule, RaceElfHumanMule, RaceGiantElf, RaceHobbitOrc,
}

// ParseRace returns the Race named s. Names are case-sensitive.
func ParseRace(s string) (Race, error) {
	for _, r := range Races {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRace, s)
}

// UnmarshalJSON accepts a known race name or an empty string (no race).
func (r *Race) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*r = ""
		return nil
	}
	parsed, err := ParseRace(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Profession is one of a closed set of player professions.
type Profession string

const (
	ProfessionWarrior    Profession = "WARRIOR"
	ProfessionRogue      Profession = "ROGUE"
	ProfessionSorcerer   Profession = "SORCERER"
	ProfessionClericc    Profession = "CLERICC"
	ProfessionPaladin    Profession = "PALADIN"
	ProfessionNaturalist Profession = "NATURALIST"
)

// Professions lists every valid Profession in declaration order.
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer,
	ProfessionClericc, ProfessionPaladin, ProfessionNaturalist,
}

// ParseProfession returns the Profession named s. Names are case-sensitive.
func ParseProfession(s string) (Profession, error) {
	for _, p := range Professions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProfession, s)
}

// UnmarshalJSON accepts a known profession name or an empty string (no profession).
func (p *Profession) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*p = ""
		return nil
	}
	parsed, err := ParseProfession(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
