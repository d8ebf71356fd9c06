package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/logger"
)

func TestParseHeader_NormalisesNames(t *testing.T) {
	h, err := ParseHeader("test", []string{" ID ", "Species", "Personality_Description", "IMAGE_URL"})
	require.NoError(t, err)

	assert.True(t, h.Has(ColID))
	assert.True(t, h.Has(ColSpecies))
	assert.True(t, h.Has(ColImageURL))
	assert.False(t, h.Has(legacyImageColumn))
}

func TestParseHeader_MissingDescriptionIsFatal(t *testing.T) {
	_, err := ParseHeader("animals.csv", []string{"id", "species", "name"})
	assert.ErrorIs(t, err, domain.ErrMissingDescriptionColumn)
	assert.Contains(t, err.Error(), "animals.csv")
}

func TestParseHeader_MissingImageWarns(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(logger.Reset)

	_, err := ParseHeader("animals.csv", []string{"id", "personality_description"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no image")
}

func TestDecode(t *testing.T) {
	h, err := ParseHeader("test", Columns())
	require.NoError(t, err)

	a, err := h.Decode([]string{
		"7", "Dog", "Rex", "Beagle", "3.5", "Male", "Brown", "12,4", "2024-03-01",
		"True", "no", "8", "6.5", "Loves long walks.", "https://img/7.jpg",
	}, 0)
	require.NoError(t, err)

	assert.Equal(t, domain.Animal{
		ID:                     7,
		Species:                domain.SpeciesDog,
		Name:                   "Rex",
		Breed:                  "Beagle",
		AgeYears:               3.5,
		Sex:                    "Male",
		Color:                  "Brown",
		WeightKg:               12.4,
		ArrivalDate:            "2024-03-01",
		Vaccinated:             true,
		Microchipped:           false,
		EnergyLevel:            8,
		FriendlinessLevel:      6.5,
		PersonalityDescription: "Loves long walks.",
		ImageURL:               "https://img/7.jpg",
	}, a)
}

func TestDecode_CanonicalisesSpecies(t *testing.T) {
	h, err := ParseHeader("test", []string{"species", "personality_description"})
	require.NoError(t, err)

	for raw, want := range map[string]domain.Species{
		"dog":    domain.SpeciesDog,
		" CAT ":  domain.SpeciesCat,
		"Rabbit": domain.Species("Rabbit"),
		"":       domain.Species(""),
	} {
		a, err := h.Decode([]string{raw, "x"}, 1)
		require.NoError(t, err)
		assert.Equal(t, want, a.Species, raw)
	}
}

func TestDecode_Lenient(t *testing.T) {
	h, err := ParseHeader("test", []string{"personality_description", "age_years"})
	require.NoError(t, err)

	a, err := h.Decode([]string{"Shy.", "unknown"}, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), a.ID)
	assert.Zero(t, a.AgeYears)

	short, err := h.Decode([]string{"Only description"}, 43)
	require.NoError(t, err)
	assert.Equal(t, "Only description", short.PersonalityDescription)
}

func TestDecode_BadID(t *testing.T) {
	h, err := ParseHeader("test", []string{"id", "personality_description"})
	require.NoError(t, err)

	_, err = h.Decode([]string{"abc", "x"}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	a, err := h.Decode([]string{"12.0", "x"}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(12), a.ID)
}

func TestEncodeDecode(t *testing.T) {
	h, err := ParseHeader("test", Columns())
	require.NoError(t, err)

	in := domain.Animal{ID: 3, Species: domain.SpeciesCat, Name: "Mia", AgeYears: 1.25,
		Vaccinated: true, PersonalityDescription: "Curious.", ImageURL: "x.png"}
	out, err := h.Decode(Encode(in), 0)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestAssemble_SkipsBlankDescriptions(t *testing.T) {
	c, err := Assemble("test", []domain.Animal{
		{ID: 1, PersonalityDescription: "ok"},
		{ID: 2, PersonalityDescription: "  "},
		{ID: 3, PersonalityDescription: "fine"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Lookup(2)
	assert.False(t, ok)
}

func TestAssemble_DuplicateIDs(t *testing.T) {
	_, err := Assemble("test", []domain.Animal{
		{ID: 1, PersonalityDescription: "a"},
		{ID: 1, PersonalityDescription: "b"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAnimalID)
}
