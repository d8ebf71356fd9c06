package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// PreferencesInput holds the adopter's answers. Empty fields are unanswered.
type PreferencesInput struct {
	Species      string `json:"species_preference,omitempty" jsonschema:"Dog, Cat or 'no preference'"`
	Energy       string `json:"energy_preference,omitempty" jsonschema:"high, medium or low"`
	Friendliness string `json:"friendliness_preference,omitempty" jsonschema:"high, medium or low"`
	Age          string `json:"age_preference,omitempty" jsonschema:"young, adult or senior"`
	Home         string `json:"home_type,omitempty" jsonschema:"apartment, house_yard, active or quiet"`
	Experience   string `json:"experience,omitempty" jsonschema:"first_time or experienced"`
	Children     string `json:"children,omitempty" jsonschema:"yes or no: are there children in the home"`
}

// FindMatchesInput is the input schema for the find_matches tool.
type FindMatchesInput struct {
	Preferences PreferencesInput `json:"preferences" jsonschema:"the adopter's answers"`
	K           int              `json:"k,omitempty" jsonschema:"maximum number of animals to return (default 5)"`
}

// FindMatchesOutput is the output schema for the find_matches tool.
type FindMatchesOutput struct {
	Matches  []MatchOutput `json:"matches"`
	Count    int           `json:"count"`
	Query    string        `json:"query"`
	Fallback bool          `json:"fallback"`
	Degraded bool          `json:"degraded"`
}

// MatchOutput represents a single ranked animal.
type MatchOutput struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	Breed       string  `json:"breed,omitempty"`
	AgeYears    float64 `json:"age_years"`
	Score       float64 `json:"match_score"`
	Description string  `json:"personality_description"`
	ImageURL    string  `json:"img_url,omitempty"`
	ResourceURI string  `json:"resource_uri"`
}

// BuildQueryInput is the input schema for the build_query tool.
type BuildQueryInput struct {
	Preferences PreferencesInput `json:"preferences" jsonschema:"the adopter's answers"`
}

// BuildQueryOutput is the output schema for the build_query tool.
type BuildQueryOutput struct {
	Query string `json:"query"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "find_matches",
		Description: "Find shelter animals whose personality best fits an adopter's answers. " +
			"Results are ranked by similarity score (0-100).",
	}, s.handleFindMatches)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_query",
		Description: "Show the natural-language description that an adopter's answers are matched against",
	}, s.handleBuildQuery)
}

// handleFindMatches handles the find_matches tool invocation.
func (s *Server) handleFindMatches(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindMatchesInput,
) (*mcp.CallToolResult, FindMatchesOutput, error) {
	prefs, err := input.Preferences.preferences()
	if err != nil {
		return nil, FindMatchesOutput{}, err
	}

	k := input.K
	if k <= 0 {
		k = s.ports.defaultK()
	}

	ctx = logger.ContextWithRequestID(ctx, logger.NewRequestID())
	result, err := s.ports.Match.FindMatches(ctx, prefs, k)
	if err != nil {
		return nil, FindMatchesOutput{}, err
	}

	output := FindMatchesOutput{
		Matches:  make([]MatchOutput, len(result.Matches)),
		Count:    len(result.Matches),
		Query:    result.Query,
		Fallback: result.Fallback,
		Degraded: result.Degraded,
	}
	for i := range result.Matches {
		a := result.Matches[i].Animal
		output.Matches[i] = MatchOutput{
			ID:          a.ID,
			Name:        a.Name,
			Species:     a.Species.String(),
			Breed:       a.Breed,
			AgeYears:    a.AgeYears,
			Score:       result.Matches[i].Score,
			Description: a.PersonalityDescription,
			ImageURL:    a.ImageURL,
			ResourceURI: animalURI(a.ID),
		}
	}

	return nil, output, nil
}

// handleBuildQuery handles the build_query tool invocation.
func (s *Server) handleBuildQuery(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input BuildQueryInput,
) (*mcp.CallToolResult, BuildQueryOutput, error) {
	prefs, err := input.Preferences.preferences()
	if err != nil {
		return nil, BuildQueryOutput{}, err
	}
	return nil, BuildQueryOutput{Query: s.ports.Match.BuildQuery(prefs)}, nil
}

// preferences converts the non-empty answers to domain preferences.
func (in PreferencesInput) preferences() (domain.Preferences, error) {
	answers := make(map[string]string)
	for key, value := range map[domain.PreferenceKey]string{
		domain.KeySpecies:      in.Species,
		domain.KeyEnergy:       in.Energy,
		domain.KeyFriendliness: in.Friendliness,
		domain.KeyAge:          in.Age,
		domain.KeyHome:         in.Home,
		domain.KeyExperience:   in.Experience,
		domain.KeyChildren:     in.Children,
	} {
		if strings.TrimSpace(value) != "" {
			answers[string(key)] = value
		}
	}

	prefs, err := domain.ParseAnswers(answers)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}
	return prefs, nil
}
