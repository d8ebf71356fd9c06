package domain

import "strings"

// Species identifies the kind of animal.
type Species string

// Known species.
const (
	// SpeciesDog is a dog.
	SpeciesDog Species = "Dog"

	// SpeciesCat is a cat.
	SpeciesCat Species = "Cat"
)

// AllSpecies returns every known species in display order.
func AllSpecies() []Species {
	return []Species{SpeciesDog, SpeciesCat}
}

// IsKnown returns true if the species is one of the known values, ignoring case.
func (s Species) IsKnown() bool {
	return s.Matches(SpeciesDog) || s.Matches(SpeciesCat)
}

// ParseSpecies trims s and returns the canonical spelling of a known
// species. Other values are returned trimmed but otherwise unchanged.
func ParseSpecies(s string) Species {
	sp := Species(strings.TrimSpace(s))
	for _, known := range AllSpecies() {
		if sp.Matches(known) {
			return known
		}
	}
	return sp
}

// Matches reports whether s equals other, ignoring case.
func (s Species) Matches(other Species) bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), strings.TrimSpace(string(other)))
}

// String returns the string representation.
func (s Species) String() string {
	return string(s)
}

// Animal is a shelter animal available for adoption.
// Animals are immutable once loaded into a Catalog.
type Animal struct {
	// ID is the unique, stable identifier.
	ID int64 `json:"id"`

	// Species is Dog or Cat.
	Species Species `json:"species"`

	// Name is the animal's name.
	Name string `json:"name"`

	// Breed is the breed label.
	Breed string `json:"breed"`

	// AgeYears is the age in years.
	AgeYears float64 `json:"age_years"`

	// Sex is the sex label (e.g. M, F).
	Sex string `json:"sex"`

	// Color is the coat colour.
	Color string `json:"color"`

	// WeightKg is the weight in kilograms.
	WeightKg float64 `json:"weight_kg"`

	// ArrivalDate is when the animal arrived at the shelter (ISO date).
	ArrivalDate string `json:"arrival_date"`

	// Vaccinated is true if the animal is vaccinated.
	Vaccinated bool `json:"vaccinated"`

	// Microchipped is true if the animal carries a microchip.
	Microchipped bool `json:"microchipped"`

	// EnergyLevel is the energy rating from 0 to 10.
	EnergyLevel float64 `json:"energy_level"`

	// FriendlinessLevel is the friendliness rating from 0 to 10.
	FriendlinessLevel float64 `json:"friendliness_level"`

	// PersonalityDescription is the free text that gets embedded.
	PersonalityDescription string `json:"personality_description"`

	// ImageURL is the display image, stored under the canonical img_url column.
	ImageURL string `json:"img_url,omitempty"`
}
