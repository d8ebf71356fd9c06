package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PreferenceKey names one of the adopter questions.
type PreferenceKey string

// Recognised preference keys, in question order.
const (
	KeySpecies      PreferenceKey = "species_preference"
	KeyEnergy       PreferenceKey = "energy_preference"
	KeyFriendliness PreferenceKey = "friendliness_preference"
	KeyAge          PreferenceKey = "age_preference"
	KeyHome         PreferenceKey = "home_type"
	KeyExperience   PreferenceKey = "experience"
	KeyChildren     PreferenceKey = "children"
)

// NoPreference is the species answer meaning "any species".
const NoPreference = "no preference"

// PreferenceKeys returns every recognised key in question order.
func PreferenceKeys() []PreferenceKey {
	return []PreferenceKey{
		KeySpecies,
		KeyEnergy,
		KeyFriendliness,
		KeyAge,
		KeyHome,
		KeyExperience,
		KeyChildren,
	}
}

// Level is a high/medium/low answer, used for energy and friendliness.
type Level string

// Level values.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// AgeGroup is the preferred age bracket.
type AgeGroup string

// AgeGroup values.
const (
	AgeYoung  AgeGroup = "young"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
)

// HomeType describes the adopter's living situation.
type HomeType string

// HomeType values.
const (
	HomeApartment HomeType = "apartment"
	HomeHouseYard HomeType = "house_yard"
	HomeActive    HomeType = "active"
	HomeQuiet     HomeType = "quiet"
)

// Experience describes the adopter's history with pets.
type Experience string

// Experience values.
const (
	ExperienceFirstTime   Experience = "first_time"
	ExperienceExperienced Experience = "experienced"
)

// Preferences holds the adopter's answers. A nil field means the
// question was not answered and contributes nothing to the query.
// Values are open: unrecognised values are carried as-is.
type Preferences struct {
	Species      *string     `json:"species_preference,omitempty"`
	Energy       *Level      `json:"energy_preference,omitempty"`
	Friendliness *Level      `json:"friendliness_preference,omitempty"`
	Age          *AgeGroup   `json:"age_preference,omitempty"`
	Home         *HomeType   `json:"home_type,omitempty"`
	Experience   *Experience `json:"experience,omitempty"`
	Children     *bool       `json:"children,omitempty"`
}

// SpeciesFilter returns the species the adopter restricted the search to.
// Absent, blank and "no preference" (any case) all mean no filter.
func (p Preferences) SpeciesFilter() (Species, bool) {
	if p.Species == nil {
		return "", false
	}
	s := strings.TrimSpace(*p.Species)
	if s == "" || strings.EqualFold(s, NoPreference) {
		return "", false
	}
	return Species(s), true
}

// Answered returns the keys that carry a value, in question order.
func (p Preferences) Answered() []PreferenceKey {
	var keys []PreferenceKey
	if p.Species != nil {
		keys = append(keys, KeySpecies)
	}
	if p.Energy != nil {
		keys = append(keys, KeyEnergy)
	}
	if p.Friendliness != nil {
		keys = append(keys, KeyFriendliness)
	}
	if p.Age != nil {
		keys = append(keys, KeyAge)
	}
	if p.Home != nil {
		keys = append(keys, KeyHome)
	}
	if p.Experience != nil {
		keys = append(keys, KeyExperience)
	}
	if p.Children != nil {
		keys = append(keys, KeyChildren)
	}
	return keys
}

// Set assigns a single answer by key. Children accepts the usual boolean
// spellings plus yes/no.
func (p *Preferences) Set(key PreferenceKey, value string) error {
	v := strings.TrimSpace(value)
	switch key {
	case KeySpecies:
		p.Species = &v
	case KeyEnergy:
		l := Level(strings.ToLower(v))
		p.Energy = &l
	case KeyFriendliness:
		l := Level(strings.ToLower(v))
		p.Friendliness = &l
	case KeyAge:
		a := AgeGroup(strings.ToLower(v))
		p.Age = &a
	case KeyHome:
		h := HomeType(strings.ToLower(v))
		p.Home = &h
	case KeyExperience:
		e := Experience(strings.ToLower(v))
		p.Experience = &e
	case KeyChildren:
		b, err := parseYesNo(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidInput, key, value)
		}
		p.Children = &b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreferenceKey, key)
	}
	return nil
}

// ParseAnswers builds Preferences from raw key/value answers, as collected
// by a questionnaire front end.
func ParseAnswers(answers map[string]string) (Preferences, error) {
	var p Preferences
	for _, key := range PreferenceKeys() {
		if v, ok := answers[string(key)]; ok {
			if err := p.Set(key, v); err != nil {
				return Preferences{}, err
			}
		}
	}
	for k := range answers {
		if !isKnownKey(PreferenceKey(k)) {
			return Preferences{}, fmt.Errorf("%w: %q", ErrUnknownPreferenceKey, k)
		}
	}
	return p, nil
}

func isKnownKey(k PreferenceKey) bool {
	for _, known := range PreferenceKeys() {
		if k == known {
			return true
		}
	}
	return false
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "oui":
		return true, nil
	case "no", "n", "non":
		return false, nil
	}
	return strconv.ParseBool(s)
}
