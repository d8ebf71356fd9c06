package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/core/ports/driving"
	"github.com/custodia-labs/petmatch/internal/logger"
	"github.com/custodia-labs/petmatch/internal/metrics"
)

// Ensure MatchService implements the interfaces.
var (
	_ driving.MatchService   = (*MatchService)(nil)
	_ driving.CatalogService = (*MatchService)(nil)
)

// MatchService ranks catalog animals against adopter preferences.
//
// The published Snapshot is read without locks. Rebuild builds a complete
// new snapshot before swapping it in, so readers only ever see a finished
// index and a failed rebuild leaves the previous one serving.
type MatchService struct {
	embedder driven.EmbeddingService
	factory  driven.VectorIndexFactory
	indexer  *CatalogIndexer

	current   atomic.Pointer[Snapshot]
	rebuildMu sync.Mutex
}

// NewMatchService creates a match service with no published snapshot.
// Call Rebuild before serving requests.
func NewMatchService(embedder driven.EmbeddingService, factory driven.VectorIndexFactory) *MatchService {
	return &MatchService{
		embedder: embedder,
		factory:  factory,
		indexer:  NewCatalogIndexer(embedder, factory, 0),
	}
}

// Rebuild embeds catalog and publishes the result.
func (s *MatchService) Rebuild(ctx context.Context, catalog *domain.Catalog) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := time.Now()
	snap, err := s.indexer.Build(ctx, catalog)
	metrics.RecordIndexBuild(time.Since(start), catalog.Len(), err)
	if err != nil {
		log := logger.Ctx(ctx, "match")
		log.Warn().Err(err).Int("animals", catalog.Len()).Msg("index build failed")
		return fmt.Errorf("rebuild index: %w", err)
	}

	// The old snapshot is not closed: in-flight requests may still hold it.
	s.current.Store(snap)
	metrics.SetDegraded(snap.Degraded)
	return nil
}

// Snapshot returns the published snapshot, or nil before the first build.
func (s *MatchService) Snapshot() *Snapshot {
	return s.current.Load()
}

// Status reports the state of the published snapshot.
func (s *MatchService) Status() driving.EngineStatus {
	snap := s.current.Load()
	if snap == nil {
		return driving.EngineStatus{Degraded: isDegraded(s.embedder)}
	}
	return driving.EngineStatus{
		Ready:         true,
		Animals:       snap.Catalog.Len(),
		Model:         snap.Model,
		Degraded:      snap.Degraded,
		BuiltAt:       snap.BuiltAt,
		BuildDuration: snap.BuildDuration,
	}
}

// BuildQuery returns the query text FindMatches embeds for prefs.
func (s *MatchService) BuildQuery(prefs domain.Preferences) string {
	return BuildQuery(prefs)
}

// LookupAnimal returns a copy of the animal with the given ID.
func (s *MatchService) LookupAnimal(_ context.Context, id int64) (*domain.Animal, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrEngineNotReady
	}
	a, ok := snap.Catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("animal %d: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

// FindMatches returns up to k animals ranked by cosine similarity between
// their descriptions and the query built from prefs.
//
// A species filter restricts the candidates and ranks them against an index
// built over that subset alone. When no animal passes the filter, the first
// k animals of a known species are returned with a zero score instead.
func (s *MatchService) FindMatches(
	ctx context.Context, prefs domain.Preferences, k int,
) (*domain.MatchResult, error) {
	start := time.Now()
	species, filtered := prefs.SpeciesFilter()

	result, err := s.findMatches(ctx, prefs, species, filtered, k)

	metrics.RecordMatch(filtered, result != nil && result.Fallback, time.Since(start), err)
	return result, err
}

func (s *MatchService) findMatches(
	ctx context.Context, prefs domain.Preferences, species domain.Species, filtered bool, k int,
) (*domain.MatchResult, error) {
	log := logger.Ctx(ctx, "match")

	snap := s.current.Load()
	if snap == nil {
		return nil, domain.ErrEngineNotReady
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", domain.ErrInvalidInput, k)
	}

	// Eligible catalog positions; nil means the whole catalog.
	var positions []int
	if filtered {
		positions = snap.Catalog.Positions(func(a domain.Animal) bool {
			return a.Species.Matches(species)
		})
		log.Debug().
			Str("species", species.String()).
			Int("eligible", len(positions)).
			Int("catalog", snap.Catalog.Len()).
			Msg("species filter applied")

		if len(positions) == 0 {
			log.Info().Str("species", species.String()).Int("k", k).Msg("no eligible animals, returning fallback")
			return fallbackResult(snap, k, isDegraded(s.embedder)), nil
		}
	}

	query := BuildQuery(prefs)
	log.Debug().Str("query", query).Msg("query built")

	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("query embedding failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrQueryEmbeddingFailed, err)
	}

	index := snap.Index
	if filtered {
		subset := make([][]float32, len(positions))
		for i, pos := range positions {
			subset[i] = snap.Embeddings[pos]
		}
		index, err = s.factory.Build(ctx, subset)
		if err != nil {
			return nil, fmt.Errorf("build subset index: %w", err)
		}
		defer index.Close()
	}

	hits, err := index.Search(ctx, qvec, min(k, index.Len()))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches := make([]domain.Match, 0, len(hits))
	for _, h := range hits {
		pos := h.Position
		if filtered {
			pos = positions[h.Position]
		}
		matches = append(matches, domain.Match{
			Animal: snap.Catalog.At(pos),
			Score:  Score(h.Distance),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	degraded := isDegraded(s.embedder)
	log.Debug().
		Int("k", k).
		Int("returned", len(matches)).
		Bool("filtered", filtered).
		Bool("degraded", degraded).
		Msg("matches ranked")

	return &domain.MatchResult{
		Matches:  matches,
		Query:    query,
		Degraded: degraded,
	}, nil
}

// fallbackResult returns up to k animals of a known species in catalog
// order, each with a zero score.
func fallbackResult(snap *Snapshot, k int, degraded bool) *domain.MatchResult {
	matches := make([]domain.Match, 0, k)
	for i := 0; i < snap.Catalog.Len() && len(matches) < k; i++ {
		a := snap.Catalog.At(i)
		if a.Species.IsKnown() {
			matches = append(matches, domain.Match{Animal: a, Score: 0})
		}
	}
	return &domain.MatchResult{
		Matches:  matches,
		Fallback: true,
		Degraded: degraded,
	}
}

// Score converts a cosine distance into a similarity percentage rounded to
// three decimals. Distances above 1 (negative similarity) score 0.
func Score(distance float64) float64 {
	s := math.Round((1-distance)*100*1000) / 1000
	switch {
	case s < 0 || math.IsNaN(s):
		return 0
	case s > 100:
		return 100
	}
	return s
}
