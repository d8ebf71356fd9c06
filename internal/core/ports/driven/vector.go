package driven

import "context"

// VectorIndex answers cosine nearest-neighbour queries over a fixed set
// of vectors. Positions are 0-based offsets into the slice the index was
// built from. An index is immutable and safe for concurrent Search calls.
type VectorIndex interface {
	// Search returns the k nearest vectors to query, nearest first.
	// Ties are broken by ascending position. k larger than Len is clamped.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of indexed vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorIndexFactory builds a VectorIndex over the given vectors.
type VectorIndexFactory interface {
	// Build indexes vectors; hit positions refer to this slice.
	Build(ctx context.Context, vectors [][]float32) (VectorIndex, error)
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Position is the offset of the matched vector in the indexed slice.
	Position int

	// Distance is the cosine distance, 1 - cosine similarity, in [0, 2].
	Distance float64
}

// Similarity returns 1 - Distance.
func (h VectorHit) Similarity() float64 {
	return 1 - h.Distance
}
