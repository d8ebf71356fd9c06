package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

func testAnimals() []domain.Animal {
	return []domain.Animal{
		{ID: 1, Species: domain.SpeciesCat, Name: "Mia", ArrivalDate: "2024-02-03",
			Microchipped: true, PersonalityDescription: "Calm independent senior cat."},
		{ID: 3, Species: domain.SpeciesDog, Name: "Rex", Breed: "Beagle", AgeYears: 3,
			WeightKg: 12.5, Vaccinated: true, EnergyLevel: 8, FriendlinessLevel: 7,
			PersonalityDescription: "Very energetic playful puppy.", ImageURL: "r.jpg"},
	}
}

func TestWriterSource_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "animals.db")
	ctx := context.Background()

	require.NoError(t, NewWriter(path).Write(ctx, testAnimals()))

	src := NewSource(path)
	assert.Equal(t, path, src.Location())

	c, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testAnimals(), c.Animals())
}

func TestWriter_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animals.db")
	ctx := context.Background()

	require.NoError(t, NewWriter(path).Write(ctx, testAnimals()))
	require.NoError(t, NewWriter(path).Write(ctx, testAnimals()[1:]))

	c, err := NewSource(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestSource_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.db")

	_, err := NewSource(path).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSource_ForeignSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foreign.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE animals (Species TEXT, Image_URL TEXT, Personality_Description TEXT);
		INSERT INTO animals VALUES ('Dog', 'a.jpg', 'Loyal'), ('Cat', NULL, '  ');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	c, err := NewSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	a := c.At(0)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "a.jpg", a.ImageURL)
	assert.Equal(t, domain.SpeciesDog, a.Species)
}

func TestSource_MissingDescriptionColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE animals (id INTEGER, species TEXT); INSERT INTO animals VALUES (1, 'Dog');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewSource(path).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingDescriptionColumn)
}

func TestText(t *testing.T) {
	assert.Equal(t, "", text(nil))
	assert.Equal(t, "abc", text([]byte("abc")))
	assert.Equal(t, "42", text(int64(42)))
	assert.Equal(t, "2.5", text(2.5))
	assert.Equal(t, "true", text(true))
}
