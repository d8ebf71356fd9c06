package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/services"
)

// preferenceFlag binds a command line flag to a preference key.
type preferenceFlag struct {
	name string
	key  domain.PreferenceKey
}

// preferenceFlagKeys lists the preference flags in question order.
var preferenceFlagKeys = []preferenceFlag{
	{"species", domain.KeySpecies},
	{"energy", domain.KeyEnergy},
	{"friendliness", domain.KeyFriendliness},
	{"age", domain.KeyAge},
	{"home", domain.KeyHome},
	{"experience", domain.KeyExperience},
	{"children", domain.KeyChildren},
}

// preferenceFlags holds the values of one command's preference flags.
type preferenceFlags map[domain.PreferenceKey]*string

// register adds a flag per preference, with the questionnaire options as help.
func (p preferenceFlags) register(cmd *cobra.Command) {
	for _, f := range preferenceFlagKeys {
		p[f.key] = cmd.Flags().String(f.name, "", optionHelp(f.key))
	}
}

// preferences parses the flags that were given on the command line.
func (p preferenceFlags) preferences(cmd *cobra.Command) (domain.Preferences, error) {
	answers := make(map[string]string)
	for _, f := range preferenceFlagKeys {
		if cmd.Flags().Changed(f.name) {
			answers[string(f.key)] = *p[f.key]
		}
	}
	prefs, err := domain.ParseAnswers(answers)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}
	return prefs, nil
}

// optionHelp describes a question and its accepted values.
func optionHelp(key domain.PreferenceKey) string {
	for _, q := range domain.Questions() {
		if q.Key != key {
			continue
		}
		values := make([]string, len(q.Options))
		for i, o := range q.Options {
			values[i] = o.Value
		}
		return fmt.Sprintf("%s (%s)", q.Prompt, strings.Join(values, ", "))
	}
	return string(key)
}

var (
	matchPrefs = preferenceFlags{}
	queryPrefs = preferenceFlags{}

	matchK    int
	matchJSON bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find animals matching adopter preferences",
	Long: `Loads the catalog, builds the index and ranks the animals against the
query built from the given preferences. A species preference restricts
the results to that species; when no animal of that species exists the
first animals of the catalog are listed with a score of zero.

Example:
  petmatch match --species Dog --energy high --home house_yard --children yes`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the query built from adopter preferences",
	Long: `Prints the natural-language text that match embeds for the given
preferences, without loading the catalog.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	matchPrefs.register(matchCmd)
	matchCmd.Flags().IntVarP(&matchK, "k", "k", 0, "number of matches (default match.neighbors)")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(matchCmd)

	queryPrefs.register(queryCmd)
	rootCmd.AddCommand(queryCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	prefs, err := matchPrefs.preferences(cmd)
	if err != nil {
		return err
	}

	k := matchK
	if k <= 0 {
		k = settings.Match.Neighbors
	}

	ctx := cmd.Context()
	eng, err := openEngine(ctx, settings)
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck

	result, err := eng.match.FindMatches(ctx, prefs, k)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchJSON {
		return printJSON(cmd, result)
	}
	printMatches(cmd, result)
	return nil
}

func runQuery(cmd *cobra.Command, _ []string) error {
	prefs, err := queryPrefs.preferences(cmd)
	if err != nil {
		return err
	}
	query := services.BuildQuery(prefs)
	if query == "" {
		cmd.Println("No preferences given, the query is empty.")
		return nil
	}
	cmd.Println(query)
	return nil
}

// printMatches renders a result as a table on a terminal and as lines otherwise.
func printMatches(cmd *cobra.Command, result *domain.MatchResult) {
	st := stylesFor(cmd)

	if result.Query != "" {
		cmd.Println(st.Muted.Render("Query: " + result.Query))
	}
	if result.Degraded {
		cmd.Println(st.Warning.Render("Embedding provider unavailable: scores are not meaningful."))
	}
	if result.Fallback {
		cmd.Println(st.Warning.Render("No animals of the requested species, showing other animals instead."))
	}
	if result.Len() == 0 {
		cmd.Println("No matches found.")
		return
	}
	cmd.Println()

	if !isTerminal(cmd.OutOrStdout()) {
		for i, m := range result.Matches {
			a := m.Animal
			cmd.Printf("[%d] %s (#%d) - %s, %s, %s years - score %.3f\n",
				i+1, a.Name, a.ID, a.Species, a.Breed, formatYears(a.AgeYears), m.Score)
		}
		return
	}

	rows := make([][]string, len(result.Matches))
	for i, m := range result.Matches {
		a := m.Animal
		rows[i] = []string{
			fmt.Sprint(i + 1),
			fmt.Sprint(a.ID),
			a.Name,
			a.Species.String(),
			a.Breed,
			formatYears(a.AgeYears),
			fmt.Sprintf("%.1f", m.Score),
		}
	}

	const scoreCol = 6
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.TableBorder()).
		Headers("#", "ID", "NAME", "SPECIES", "BREED", "AGE", "SCORE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(st.Title)
			case col == scoreCol:
				return cell.Inherit(st.ScoreStyle(result.Matches[row].Score))
			default:
				return cell
			}
		})
	cmd.Println(t.Render())
}

// formatYears renders an age without trailing zeros.
func formatYears(age float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", age), "0"), ".")
}
