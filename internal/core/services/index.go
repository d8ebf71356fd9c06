package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/logger"
)

// defaultBatchSize is the number of descriptions sent per EmbedBatch call.
const defaultBatchSize = 32

// Snapshot is an immutable catalog with its embeddings and full-catalog
// index. Embeddings[i] is the vector for Catalog.At(i). Nothing in a
// Snapshot is modified after CatalogIndexer.Build returns it.
type Snapshot struct {
	Catalog       *domain.Catalog
	Embeddings    [][]float32
	Index         driven.VectorIndex
	Model         string
	Degraded      bool
	BuiltAt       time.Time
	BuildDuration time.Duration
}

// CatalogIndexer embeds catalogs and builds their search index.
type CatalogIndexer struct {
	embedder  driven.EmbeddingService
	factory   driven.VectorIndexFactory
	batchSize int
}

// NewCatalogIndexer creates an indexer. batchSize <= 0 uses the default.
func NewCatalogIndexer(
	embedder driven.EmbeddingService,
	factory driven.VectorIndexFactory,
	batchSize int,
) *CatalogIndexer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &CatalogIndexer{
		embedder:  embedder,
		factory:   factory,
		batchSize: batchSize,
	}
}

// Build embeds every description in catalog order and indexes the vectors.
// It fails with domain.ErrEmptyCatalog for an empty catalog and with a
// *domain.RecordEmbeddingError naming the first record that could not be
// embedded. No snapshot is returned on failure.
func (b *CatalogIndexer) Build(ctx context.Context, catalog *domain.Catalog) (*Snapshot, error) {
	logger.Section("Index Build")
	start := time.Now()

	if catalog.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	if b.embedder == nil || b.factory == nil {
		return nil, fmt.Errorf("%w: indexer needs an embedder and an index factory", domain.ErrInvalidInput)
	}

	logger.Debug("Embedding %d descriptions with %s (batch %d)",
		catalog.Len(), b.embedder.ModelName(), b.batchSize)

	descriptions := catalog.Descriptions()
	vectors := make([][]float32, 0, len(descriptions))

	for lo := 0; lo < len(descriptions); lo += b.batchSize {
		hi := min(lo+b.batchSize, len(descriptions))

		batch, err := b.embedBatch(ctx, catalog, descriptions, lo, hi)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	index, err := b.factory.Build(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	snap := &Snapshot{
		Catalog:       catalog,
		Embeddings:    vectors,
		Index:         index,
		Model:         b.embedder.ModelName(),
		Degraded:      isDegraded(b.embedder),
		BuiltAt:       time.Now(),
		BuildDuration: time.Since(start),
	}

	logger.Info("Indexed %d animals in %s", catalog.Len(), snap.BuildDuration.Round(time.Millisecond))
	return snap, nil
}

// embedBatch embeds descriptions[lo:hi]. When the batch call fails the
// records are retried one by one so the failing ID can be reported.
func (b *CatalogIndexer) embedBatch(
	ctx context.Context, catalog *domain.Catalog, descriptions []string, lo, hi int,
) ([][]float32, error) {
	batch, err := b.embedder.EmbedBatch(ctx, descriptions[lo:hi])
	if err == nil && len(batch) == hi-lo {
		for i, v := range batch {
			if verr := b.checkVector(v); verr != nil {
				return nil, &domain.RecordEmbeddingError{ID: catalog.At(lo + i).ID, Err: verr}
			}
		}
		return batch, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		logger.Debug("Batch %d-%d failed, embedding individually: %v", lo, hi, err)
	}

	out := make([][]float32, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v, err := b.embedder.Embed(ctx, descriptions[i])
		if err == nil {
			err = b.checkVector(v)
		}
		if err != nil {
			return nil, &domain.RecordEmbeddingError{ID: catalog.At(i).ID, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func (b *CatalogIndexer) checkVector(v []float32) error {
	if len(v) == 0 {
		return errors.New("empty embedding")
	}
	if dims := b.embedder.Dimensions(); dims > 0 && len(v) != dims {
		return fmt.Errorf("embedding has %d dimensions, want %d", len(v), dims)
	}
	return nil
}

func isDegraded(e driven.EmbeddingService) bool {
	r, ok := e.(driven.DegradationReporter)
	return ok && r.IsDegraded()
}
