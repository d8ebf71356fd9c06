package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

var animalJSON bool

var animalCmd = &cobra.Command{
	Use:   "animal",
	Short: "Inspect catalog animals",
}

var animalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an animal's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnimalShow,
}

func init() {
	animalShowCmd.Flags().BoolVar(&animalJSON, "json", false, "output as JSON")
	animalCmd.AddCommand(animalShowCmd)
	rootCmd.AddCommand(animalCmd)
}

func runAnimalShow(cmd *cobra.Command, args []string) error {
	id, err := parseAnimalID(args[0])
	if err != nil {
		return err
	}
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	catalog, _, err := loadCatalog(cmd.Context(), settings)
	if err != nil {
		return err
	}

	animal, ok := catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("animal %d: %w", id, domain.ErrNotFound)
	}

	if animalJSON {
		return printJSON(cmd, animal)
	}
	printAnimal(cmd, &animal)
	return nil
}

func printAnimal(cmd *cobra.Command, a *domain.Animal) {
	st := stylesFor(cmd)

	cmd.Println(st.Subtitle.Render(fmt.Sprintf("%s (#%d)", a.Name, a.ID)))
	field := func(label, value string) {
		cmd.Printf("  %s %s\n", st.Muted.Render(fmt.Sprintf("%-13s", label+":")), value)
	}
	field("Species", a.Species.String())
	field("Breed", a.Breed)
	field("Age", formatYears(a.AgeYears)+" years")
	field("Sex", a.Sex)
	field("Color", a.Color)
	field("Weight", fmt.Sprintf("%.1f kg", a.WeightKg))
	field("Arrived", a.ArrivalDate)
	field("Vaccinated", yesNo(a.Vaccinated))
	field("Microchipped", yesNo(a.Microchipped))
	field("Energy", fmt.Sprintf("%g/10", a.EnergyLevel))
	field("Friendliness", fmt.Sprintf("%g/10", a.FriendlinessLevel))
	if a.ImageURL != "" {
		field("Image", a.ImageURL)
	}
	cmd.Println()
	cmd.Println(a.PersonalityDescription)
}
