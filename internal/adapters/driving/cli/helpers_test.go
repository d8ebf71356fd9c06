package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/csvfile"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/services"
	"github.com/custodia-labs/petmatch/internal/logger"
)

func testAnimals() []domain.Animal {
	return []domain.Animal{
		{
			ID: 1, Species: domain.SpeciesDog, Name: "Rex", Breed: "Labrador", AgeYears: 2.5,
			Sex: "M", Color: "Yellow", WeightKg: 30, ArrivalDate: "2024-03-01",
			Vaccinated: true, EnergyLevel: 9, FriendlinessLevel: 8,
			PersonalityDescription: "A very energetic dog that loves to play fetch and run in the yard.",
		},
		{
			ID: 2, Species: domain.SpeciesCat, Name: "Mia", Breed: "Siamese", AgeYears: 9,
			Sex: "F", Color: "Cream", WeightKg: 4.2, ArrivalDate: "2024-05-12",
			Microchipped: true, EnergyLevel: 2, FriendlinessLevel: 6,
			PersonalityDescription: "A calm and relaxed cat that enjoys quiet afternoons on the sofa.",
		},
		{
			ID: 3, Species: domain.SpeciesDog, Name: "Bella", Breed: "Beagle", AgeYears: 5,
			Sex: "F", Color: "Tricolor", WeightKg: 11, ArrivalDate: "2024-01-20",
			Vaccinated: true, Microchipped: true, EnergyLevel: 6, FriendlinessLevel: 10,
			PersonalityDescription: "A gentle dog who adores children and follows everyone around.",
		},
	}
}

// writeCatalog writes animals to a CSV file in a temp dir and returns its path.
func writeCatalog(t *testing.T, animals []domain.Animal) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "animals.csv")
	require.NoError(t, csvfile.NewWriter(path).Write(context.Background(), animals))
	return path
}

// useTestSettings injects in-memory settings with the offline encoder.
func useTestSettings(t *testing.T, catalogPath string) *services.SettingsService {
	t.Helper()

	svc := services.NewSettingsService(memory.NewConfigStore())
	require.NoError(t, svc.Set("embedding.provider", "hashing"))
	require.NoError(t, svc.Set("embedding.model", "hashing-v1"))
	require.NoError(t, svc.Set("embedding.dimensions", "64"))
	require.NoError(t, svc.Set("catalog.path", catalogPath))

	logger.SetOutput(io.Discard)
	settingsService = svc
	t.Cleanup(func() {
		settingsService = nil
		logger.Reset()
	})
	return svc
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
