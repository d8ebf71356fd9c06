package services

import (
	"strings"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// Clause templates, keyed by answer value. Each key has a neutral clause
// used when the value is not in its table.
var (
	energyPhrases = map[domain.Level]string{
		domain.LevelHigh:   "a very energetic and active animal that loves to play and exercise",
		domain.LevelMedium: "a moderately active animal with balanced energy",
		domain.LevelLow:    "a calm and relaxed animal that enjoys quiet moments",
	}
	friendlinessPhrases = map[domain.Level]string{
		domain.LevelHigh:   "extremely affectionate and love everyone",
		domain.LevelMedium: "friendly but not too clingy",
		domain.LevelLow:    "independent and reserved, not always seeking attention",
	}
	agePhrases = map[domain.AgeGroup]string{
		domain.AgeYoung:  "I would prefer a young animal, full of life and curiosity.",
		domain.AgeAdult:  "I would prefer an adult animal with a settled character.",
		domain.AgeSenior: "I would prefer a senior animal looking for a peaceful home.",
	}
	homePhrases = map[domain.HomeType]string{
		domain.HomeApartment: "I live in an apartment, so the animal must adapt to a small indoor space.",
		domain.HomeHouseYard: "I live in a house with a yard where the animal can run outside.",
		domain.HomeActive:    "I have an active lifestyle with lots of outings and walks.",
		domain.HomeQuiet:     "I have a quiet home and a calm daily routine.",
	}
	experiencePhrases = map[domain.Experience]string{
		domain.ExperienceFirstTime:   "This is my first pet, so an easy-going animal suits me best.",
		domain.ExperienceExperienced: "I am an experienced owner and can handle a demanding animal.",
	}
)

const (
	defaultEnergyPhrase       = "an animal"
	defaultFriendlinessPhrase = "friendly"
	defaultAgeClause          = "Age does not matter to me."
	defaultHomeClause         = "My home can welcome an animal."
	defaultExperienceClause   = "I have some experience with animals."
	childrenClause            = "The animal must be comfortable with children."
)

// BuildQuery turns preferences into the text that is embedded and compared
// against animal descriptions. Clauses follow a fixed order (energy,
// friendliness, age, home, experience, children), one per answered key.
// Species is never part of the text; it only filters the catalog.
// No answers yields the empty string.
func BuildQuery(p domain.Preferences) string {
	clauses := make([]string, 0, 6)

	if p.Energy != nil {
		phrase, ok := energyPhrases[*p.Energy]
		if !ok {
			phrase = defaultEnergyPhrase
		}
		clauses = append(clauses, "I am looking for "+phrase+".")
	}
	if p.Friendliness != nil {
		phrase, ok := friendlinessPhrases[*p.Friendliness]
		if !ok {
			phrase = defaultFriendlinessPhrase
		}
		clauses = append(clauses, "This animal should be "+phrase+".")
	}
	if p.Age != nil {
		clauses = append(clauses, lookup(agePhrases, *p.Age, defaultAgeClause))
	}
	if p.Home != nil {
		clauses = append(clauses, lookup(homePhrases, *p.Home, defaultHomeClause))
	}
	if p.Experience != nil {
		clauses = append(clauses, lookup(experiencePhrases, *p.Experience, defaultExperienceClause))
	}
	if p.Children != nil && *p.Children {
		clauses = append(clauses, childrenClause)
	}

	return strings.Join(clauses, " ")
}

func lookup[K comparable](table map[K]string, key K, fallback string) string {
	if s, ok := table[key]; ok {
		return s
	}
	return fallback
}
