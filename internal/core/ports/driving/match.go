package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// MatchService recommends animals for an adopter's preferences.
type MatchService interface {
	// FindMatches returns up to k animals ranked by similarity to prefs.
	// Returns domain.ErrEngineNotReady before the first successful build.
	FindMatches(ctx context.Context, prefs domain.Preferences, k int) (*domain.MatchResult, error)

	// LookupAnimal returns the animal with the given ID.
	LookupAnimal(ctx context.Context, id int64) (*domain.Animal, error)

	// BuildQuery returns the natural-language query prefs are matched with.
	BuildQuery(prefs domain.Preferences) string

	// Status reports the state of the published index.
	Status() EngineStatus
}

// CatalogService (re)builds the index the MatchService reads from.
type CatalogService interface {
	// Rebuild embeds catalog and publishes it atomically.
	// The previous index keeps serving if the build fails.
	Rebuild(ctx context.Context, catalog *domain.Catalog) error
}

// EngineStatus describes the published index.
type EngineStatus struct {
	Ready         bool          `json:"ready"`
	Animals       int           `json:"animals"`
	Model         string        `json:"model,omitempty"`
	Degraded      bool          `json:"degraded"`
	BuiltAt       time.Time     `json:"built_at"`
	BuildDuration time.Duration `json:"build_duration"`
}
