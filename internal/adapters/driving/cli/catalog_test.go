package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

func TestCatalogStatsCmd(t *testing.T) {
	path := writeCatalog(t, testAnimals())
	useTestSettings(t, path)

	out, err := executeCommand(t, "catalog", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Source:  "+path)
	assert.Contains(t, out, "Animals: 3")
	assert.Contains(t, out, "Dog:   2")
	assert.Contains(t, out, "Cat:   1")
}

func TestCatalogStatsCmd_SQLiteByExtension(t *testing.T) {
	dbPath := t.TempDir() + "/animals.db"
	useTestSettings(t, dbPath)

	_, err := executeCommand(t, "generate", "-n", "4", "--out", dbPath)
	require.NoError(t, err)

	out, err := executeCommand(t, "catalog", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Animals: 4")
}

func TestSpeciesOrder(t *testing.T) {
	counts := map[domain.Species]int{
		"Rabbit":          1,
		domain.SpeciesCat: 2,
		"Horse":           1,
		domain.SpeciesDog: 3,
	}

	assert.Equal(t,
		[]domain.Species{domain.SpeciesDog, domain.SpeciesCat, "Horse", "Rabbit"},
		speciesOrder(counts))
}

func TestSpeciesOrder_SkipsAbsentKnownSpecies(t *testing.T) {
	counts := map[domain.Species]int{domain.SpeciesCat: 1}
	assert.Equal(t, []domain.Species{domain.SpeciesCat}, speciesOrder(counts))
}
