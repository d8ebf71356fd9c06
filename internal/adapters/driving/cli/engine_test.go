package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/csvfile"
	"github.com/custodia-labs/petmatch/internal/core/domain"
)

func openTestEngine(t *testing.T, path string) *engine {
	t.Helper()
	svc := useTestSettings(t, path)
	settings, err := svc.Get()
	require.NoError(t, err)

	eng, err := openEngine(context.Background(), settings)
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() }) //nolint:errcheck
	return eng
}

func TestOpenEngine(t *testing.T) {
	eng := openTestEngine(t, writeCatalog(t, testAnimals()))

	status := eng.match.Status()
	assert.True(t, status.Ready)
	assert.Equal(t, 3, status.Animals)
	assert.False(t, status.Degraded)
	assert.Equal(t, "hashing-v1", status.Model)
}

func TestOpenEngine_DegradedProviderStillBuilds(t *testing.T) {
	svc := useTestSettings(t, writeCatalog(t, testAnimals()))
	require.NoError(t, svc.Set("embedding.provider", "openai"))
	settings, err := svc.Get()
	require.NoError(t, err)

	eng, err := openEngine(context.Background(), settings)
	require.NoError(t, err)
	defer eng.Close() //nolint:errcheck

	assert.True(t, eng.match.Status().Degraded)
}

func TestOpenEngine_UnsupportedFormat(t *testing.T) {
	svc := useTestSettings(t, filepath.Join(t.TempDir(), "animals.txt"))
	settings, err := svc.Get()
	require.NoError(t, err)
	settings.Catalog.Format = "xml"

	_, err = openEngine(context.Background(), settings)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestEngine_ReloadKeepsOldIndexOnFailure(t *testing.T) {
	path := writeCatalog(t, testAnimals())
	eng := openTestEngine(t, path)

	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,Rex\n"), 0600))

	err := eng.reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingDescriptionColumn)
	assert.Equal(t, 3, eng.match.Status().Animals)
}

func TestEngine_Reload(t *testing.T) {
	path := writeCatalog(t, testAnimals())
	eng := openTestEngine(t, path)

	require.NoError(t, csvfile.NewWriter(path).Write(context.Background(), testAnimals()[:2]))

	require.NoError(t, eng.reload(context.Background()))
	assert.Equal(t, 2, eng.match.Status().Animals)
}

func TestWatchCatalog_RebuildsOnChange(t *testing.T) {
	path := writeCatalog(t, testAnimals())
	eng := openTestEngine(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	stop, err := watchCatalog(cmd, eng, path)
	require.NoError(t, err)
	defer stop()

	require.NoError(t, csvfile.NewWriter(path).Write(context.Background(), testAnimals()[:1]))

	assert.Eventually(t, func() bool {
		return eng.match.Status().Animals == 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestParseAnimalID(t *testing.T) {
	id, err := parseAnimalID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseAnimalID("forty-two")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
