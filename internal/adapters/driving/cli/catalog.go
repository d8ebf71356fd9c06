package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the animal catalog",
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog size by species",
	Args:  cobra.NoArgs,
	RunE:  runCatalogStats,
}

func init() {
	catalogCmd.AddCommand(catalogStatsCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogStats(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	catalog, source, err := loadCatalog(cmd.Context(), settings)
	if err != nil {
		return err
	}

	st := stylesFor(cmd)
	counts := catalog.CountBySpecies()

	cmd.Println(st.Title.Render("Catalog"))
	cmd.Printf("  Source:  %s\n", source.Location())
	cmd.Printf("  Animals: %d\n", catalog.Len())
	for _, s := range speciesOrder(counts) {
		cmd.Printf("    %-6s %d\n", s.String()+":", counts[s])
	}
	return nil
}

// speciesOrder lists known species first, then any others alphabetically.
func speciesOrder(counts map[domain.Species]int) []domain.Species {
	var order []domain.Species
	for _, s := range domain.AllSpecies() {
		if counts[s] > 0 {
			order = append(order, s)
		}
	}
	var other []domain.Species
	for s := range counts {
		if !s.IsKnown() {
			other = append(other, s)
		}
	}
	sort.Slice(other, func(i, j int) bool { return other[i] < other[j] })
	return append(order, other...)
}
