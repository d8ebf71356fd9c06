package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

const sample = `ID,Species,Name,Breed,Age_Years,Sex,Color,Weight_Kg,Arrival_Date,Vaccinated,Microchipped,Energy_Level,Friendliness_Level,Personality_Description,Image_URL
1,Dog,Rex,Beagle,3,Male,Brown,12.5,2024-01-02,True,False,8,7,"Very energetic, playful puppy.",https://img/1.jpg
2,Cat,Mia,Siamese,9,Female,Cream,4.1,2024-02-03,True,True,2,4,Calm independent senior cat.,https://img/2.jpg
`

func TestRead(t *testing.T) {
	c, err := Read(context.Background(), "sample", strings.NewReader(sample))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	rex, ok := c.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, domain.SpeciesDog, rex.Species)
	assert.Equal(t, "Very energetic, playful puppy.", rex.PersonalityDescription)
	assert.Equal(t, "https://img/1.jpg", rex.ImageURL)
	assert.True(t, rex.Vaccinated)
	assert.InDelta(t, 12.5, rex.WeightKg, 1e-9)
}

func TestRead_MissingDescriptionColumn(t *testing.T) {
	_, err := Read(context.Background(), "bad.csv", strings.NewReader("id,species\n1,Dog\n"))
	assert.ErrorIs(t, err, domain.ErrMissingDescriptionColumn)

	_, err = Read(context.Background(), "empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrMissingDescriptionColumn)
}

func TestRead_NoIDColumnNumbersRows(t *testing.T) {
	c, err := Read(context.Background(), "x", strings.NewReader("species,personality_description\nDog,a\nCat,b\n"))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, []int64{c.At(0).ID, c.At(1).ID})
}

func TestRead_HeaderOnlyIsEmptyCatalog(t *testing.T) {
	c, err := Read(context.Background(), "x", strings.NewReader("id,personality_description\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestRead_BadID(t *testing.T) {
	_, err := Read(context.Background(), "x", strings.NewReader("id,personality_description\nfoo,a\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "row 1")
}

func TestSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0600))

	src := NewSource(path)
	assert.Equal(t, path, src.Location())

	c, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = NewSource(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "animals.csv")
	animals := []domain.Animal{
		{ID: 10, Species: domain.SpeciesCat, Name: "Tom", AgeYears: 2.5,
			PersonalityDescription: `Says "hello", then naps.`, ImageURL: "t.jpg"},
		{ID: 11, Species: domain.SpeciesDog, Name: "Bo", Microchipped: true,
			PersonalityDescription: "Line one\nline two"},
	}

	require.NoError(t, NewWriter(path).Write(context.Background(), animals))

	c, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, animals, c.Animals())
}
