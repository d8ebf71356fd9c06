package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/ai"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/formats"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/embedding/resilient"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/vector/brute"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/core/services"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// engine is a built match service together with the resources behind it.
type engine struct {
	match    *services.MatchService
	provider *resilient.Provider
	source   driven.CatalogSource
}

// catalogSource opens the configured catalog. A recognised file extension
// picks the format.
func catalogSource(settings *domain.AppSettings) (driven.CatalogSource, error) {
	cs := settings.Catalog
	cs.Format = formats.Detect(cs.Path, cs.Format)
	return formats.NewSource(cs)
}

// loadCatalog reads the configured catalog.
func loadCatalog(ctx context.Context, settings *domain.AppSettings) (*domain.Catalog, driven.CatalogSource, error) {
	source, err := catalogSource(settings)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := source.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog %s: %w", source.Location(), err)
	}
	return catalog, source, nil
}

// openEngine loads the catalog, starts the embedding provider and builds
// the index. A degraded provider is logged, a failed build is returned.
func openEngine(ctx context.Context, settings *domain.AppSettings) (*engine, error) {
	log := logger.With("cli")

	catalog, source, err := loadCatalog(ctx, settings)
	if err != nil {
		return nil, err
	}

	provider, err := ai.NewProvider(ctx, &settings.Embedding)
	if err != nil {
		log.Warn().Err(err).Msg("embedding provider degraded, matches will not be meaningful")
	}

	match := services.NewMatchService(provider, brute.NewFactory())
	if err := match.Rebuild(ctx, catalog); err != nil {
		provider.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	log.Info().
		Int("animals", catalog.Len()).
		Str("source", source.Location()).
		Str("model", provider.ModelName()).
		Bool("degraded", provider.IsDegraded()).
		Msg("index ready")

	return &engine{match: match, provider: provider, source: source}, nil
}

// reload rebuilds the index from the catalog source. The previous index
// keeps serving when loading or building fails.
func (e *engine) reload(ctx context.Context) error {
	catalog, err := e.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", e.source.Location(), err)
	}
	return e.match.Rebuild(ctx, catalog)
}

// Close releases the embedding provider.
func (e *engine) Close() error {
	return e.provider.Close()
}

// parseAnimalID parses a positional animal ID argument.
func parseAnimalID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: animal id %q is not a number", domain.ErrInvalidInput, arg)
	}
	return id, nil
}
