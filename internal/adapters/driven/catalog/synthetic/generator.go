// Package synthetic generates realistic shelter animals for demos and tests.
//
// A Generator is seeded, so the same seed and reference date always produce
// the same dataset. Each animal gets a personality description composed
// from energy, friendliness, age and species specific traits, rich enough
// for embedding-based matching to separate them.
package synthetic

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

var (
	dogBreeds = []string{"Labrador", "Beagle", "Bulldog", "Poodle", "Shepherd", "Golden Retriever", "Husky", "Chihuahua"}
	catBreeds = []string{"Persian", "Siamese", "Maine Coon", "Sphynx", "Bengal", "Ragdoll", "British Shorthair", "Tabby"}
	colors    = []string{"black", "white", "brown", "grey", "gold", "mixed", "cream", "orange"}
	names     = []string{
		"Bella", "Max", "Luna", "Charlie", "Milo", "Coco", "Lucy", "Rocky",
		"Oliver", "Daisy", "Leo", "Sophie", "Shadow", "Whiskers", "Duke", "Princess",
		"Buddy", "Molly", "Zeus", "Nala", "Oscar", "Lily", "Simba", "Chloe",
	}
)

// tier is a coarse level that drives both wording and the numeric rating.
type tier int

const (
	tierHigh tier = iota
	tierMedium
	tierLow
)

// rating returns the [min, max) numeric range for a tier on the 1 to 10 scale.
func (t tier) rating() (float64, float64) {
	switch t {
	case tierHigh:
		return 7, 10
	case tierMedium:
		return 4, 7
	default:
		return 1, 4
	}
}

var energyPhrases = map[tier][]string{
	tierHigh: {
		"very energetic", "loves to run and play", "always on the move",
		"needs lots of exercise", "bounces with excitement", "thrives on activity",
	},
	tierMedium: {
		"moderately active", "enjoys regular playtime", "balanced energy",
		"playful but not hyperactive", "likes both play and rest",
	},
	tierLow: {
		"calm and relaxed", "prefers lounging", "gentle and peaceful",
		"enjoys quiet time", "mellowed with age", "sedentary lifestyle",
	},
}

var friendlinessPhrases = map[tier][]string{
	tierHigh: {
		"extremely affectionate", "loves everyone they meet", "craves human attention",
		"tail wags constantly", "seeks out cuddles", "very sociable", "great with families",
	},
	tierMedium: {
		"friendly but selective", "warms up after introduction", "moderately social",
		"affectionate with trusted people", "balanced temperament",
	},
	tierLow: {
		"independent spirit", "prefers solitude", "takes time to trust",
		"reserved personality", "selective with affection", "needs patient owner",
	},
}

var (
	dogTraits = []string{
		"loves fetch and outdoor games", "excellent walking companion", "enjoys car rides",
		"responds well to training", "protective of family", "good with children",
		"needs mental stimulation", "loves treats and food puzzles", "barks to communicate",
		"enjoys dog parks and socializing", "loyal companion", "needs daily exercise",
	}
	catTraits = []string{
		"enjoys climbing and perching high", "loves to chase toys", "purrs when content",
		"independent but loving", "enjoys window watching", "playful with laser pointers",
		"uses scratching post regularly", "curious about everything", "loves cozy spots",
		"gentle with children", "enjoys quiet environments", "grooms meticulously",
	}

	youngTraits = []string{
		"young and still learning", "puppy/kitten energy", "needs training and guidance",
		"very playful", "teething phase", "exploring the world",
	}
	adultTraits = []string{
		"in their prime", "fully grown", "established personality", "mature behavior",
		"settled into routines",
	}
	seniorTraits = []string{
		"senior with wisdom", "calmer with age", "set in their ways", "mature companion",
		"gentle soul", "experienced pet",
	}

	likes = []string{
		"loves belly rubs", "enjoys being brushed", "loves mealtime", "enjoys napping in sunbeams",
		"loves interactive play", "enjoys gentle petting", "loves outdoor adventures",
		"enjoys quiet companionship",
	}
	idealHomes = []string{
		"Would thrive in an active household", "Perfect for a quiet home",
		"Great for families with kids", "Ideal for single owner",
		"Best with experienced pet owners", "Wonderful for first-time owners",
		"Suited for apartment living", "Needs a home with a yard",
	}
)

// arrivalWindow is how far back arrival dates go.
const arrivalWindow = 2 * 365

// Generator produces synthetic animals.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// New creates a generator. Arrival dates fall within two years before now.
func New(seed uint64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x5eed)),
		now: now,
	}
}

// Generate returns n animals with IDs 1 to n.
func (g *Generator) Generate(n int) []domain.Animal {
	if n < 0 {
		n = 0
	}
	out := make([]domain.Animal, 0, n)
	for i := range n {
		out = append(out, g.animal(int64(i+1)))
	}
	return out
}

func (g *Generator) animal(id int64) domain.Animal {
	species := domain.SpeciesDog
	if g.rng.IntN(2) == 1 {
		species = domain.SpeciesCat
	}

	breeds, minWeight, maxWeight := dogBreeds, 3.0, 45.0
	image := fmt.Sprintf("https://placedog.net/%d", 199+id)
	if species == domain.SpeciesCat {
		breeds, minWeight, maxWeight = catBreeds, 2.0, 8.0
		image = fmt.Sprintf("https://placecats.com/%d/%d", 199+id, 199+id)
	}

	a := domain.Animal{
		ID:      id,
		Species: species,
		Name:    pick(g.rng, names),
		Breed:   pick(g.rng, breeds),
		Sex:     pick(g.rng, []string{"M", "F"}),
		Color:   pick(g.rng, colors),
	}
	a.AgeYears = round(g.uniform(0.2, 15.0), 1)
	a.WeightKg = round(g.uniform(minWeight, maxWeight), 2)
	a.ArrivalDate = g.now.AddDate(0, 0, -g.rng.IntN(arrivalWindow+1)).Format(time.DateOnly)
	a.Vaccinated = g.rng.IntN(2) == 1
	a.Microchipped = g.rng.IntN(2) == 1
	a.ImageURL = image

	energy := tier(g.rng.IntN(3))
	friendliness := tier(g.rng.IntN(3))
	a.EnergyLevel = round(g.uniform(energy.rating()), 1)
	a.FriendlinessLevel = round(g.uniform(friendliness.rating()), 1)
	a.PersonalityDescription = g.describe(a, energy, friendliness)

	return a
}

func (g *Generator) describe(a domain.Animal, energy, friendliness tier) string {
	traits := dogTraits
	if a.Species == domain.SpeciesCat {
		traits = catTraits
	}

	ageTraits := seniorTraits
	switch {
	case a.AgeYears < 2:
		ageTraits = youngTraits
	case a.AgeYears < 7:
		ageTraits = adultTraits
	}

	pronoun := "She"
	if a.Sex == "M" {
		pronoun = "He"
	}

	return fmt.Sprintf(
		"This %s-year-old %s %s is %s and %s. %s. %s. %s. %s. %s would make a wonderful addition to the right home.",
		formatAge(a.AgeYears), a.Breed, strings.ToLower(a.Species.String()),
		pick(g.rng, energyPhrases[energy]), pick(g.rng, friendlinessPhrases[friendliness]),
		capitalize(pick(g.rng, ageTraits)),
		strings.Join(sample(g.rng, traits, 3), " "),
		pick(g.rng, likes),
		pick(g.rng, idealHomes),
		pronoun,
	)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

// sample returns k distinct elements in random order.
func sample(rng *rand.Rand, from []string, k int) []string {
	idx := rng.Perm(len(from))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = from[j]
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func formatAge(age float64) string {
	return fmt.Sprintf("%.1f", age)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
