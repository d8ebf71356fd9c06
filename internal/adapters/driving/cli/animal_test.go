package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

func TestAnimalShowCmd_RequiresExactlyOneArg(t *testing.T) {
	useTestSettings(t, writeCatalog(t, testAnimals()))

	_, err := executeCommand(t, "animal", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnimalShowCmd_Plain(t *testing.T) {
	useTestSettings(t, writeCatalog(t, testAnimals()))

	out, err := executeCommand(t, "animal", "show", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Bella (#3)")
	assert.Contains(t, out, "Beagle")
	assert.Contains(t, out, "11.0 kg")
	assert.Contains(t, out, "10/10")
	assert.Contains(t, out, "adores children")
}

func TestAnimalShowCmd_JSON(t *testing.T) {
	useTestSettings(t, writeCatalog(t, testAnimals()))

	out, err := executeCommand(t, "animal", "show", "2", "--json")
	require.NoError(t, err)

	var animal domain.Animal
	require.NoError(t, json.Unmarshal([]byte(out), &animal))
	assert.Equal(t, testAnimals()[1], animal)
}

func TestAnimalShowCmd_NotFound(t *testing.T) {
	useTestSettings(t, writeCatalog(t, testAnimals()))

	_, err := executeCommand(t, "animal", "show", "42")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnimalShowCmd_InvalidID(t *testing.T) {
	useTestSettings(t, writeCatalog(t, testAnimals()))

	_, err := executeCommand(t, "animal", "show", "rex")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
