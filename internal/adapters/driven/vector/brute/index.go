// Package brute provides an exhaustive cosine nearest-neighbour index.
// It implements the driven.VectorIndex interface.
//
// Every search compares the query against every stored vector, which is
// exact and fast enough for catalogs of a few thousand animals.
package brute

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

// Ensure Index and Factory implement the interfaces.
var (
	_ driven.VectorIndex        = (*Index)(nil)
	_ driven.VectorIndexFactory = Factory{}
)

// ErrDimensionMismatch is returned when vectors of different lengths are mixed.
var ErrDimensionMismatch = errors.New("brute: embedding dimension mismatch")

// Factory builds brute-force indexes.
type Factory struct{}

// NewFactory returns a brute-force index factory.
func NewFactory() Factory {
	return Factory{}
}

// Build indexes vectors. All vectors must have the same length.
func (Factory) Build(_ context.Context, vectors [][]float32) (driven.VectorIndex, error) {
	return New(vectors)
}

// Index holds vectors and their norms. It is immutable after New and safe
// for concurrent searches.
type Index struct {
	vectors   [][]float32
	norms     []float64
	dimension int
}

// New creates an index over vectors. The slice is copied; the vectors
// themselves are shared and must not be modified by the caller.
func New(vectors [][]float32) (*Index, error) {
	idx := &Index{
		vectors: make([][]float32, len(vectors)),
		norms:   make([]float64, len(vectors)),
	}
	copy(idx.vectors, vectors)

	for i, v := range idx.vectors {
		if i == 0 {
			idx.dimension = len(v)
		} else if len(v) != idx.dimension {
			return nil, fmt.Errorf("%w: vector %d has %d, want %d", ErrDimensionMismatch, i, len(v), idx.dimension)
		}
		idx.norms[i] = norm(v)
	}

	return idx, nil
}

// Search returns the k nearest vectors by cosine distance, nearest first.
// Equal distances are ordered by position.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimensionMismatch, len(query), idx.dimension)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qnorm := norm(query)
	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{
			Position: i,
			Distance: 1 - cosine(query, v, qnorm, idx.norms[i]),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Position < hits[j].Position
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Dimension returns the vector length, 0 for an empty index.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Close is a no-op; the index holds no external resources.
func (idx *Index) Close() error {
	return nil
}

// cosine returns the cosine similarity of a and b given their norms.
// A zero vector has similarity 0 with everything.
func cosine(a, b []float32, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	sim := dot / (na * nb)
	// Clamp rounding error so distances stay within [0, 2].
	return math.Max(-1, math.Min(1, sim))
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
