package brute

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DimensionMismatch(t *testing.T) {
	_, err := New([][]float32{{1, 0}, {1, 0, 0}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearch_OrdersByCosineDistance(t *testing.T) {
	idx, err := New([][]float32{
		{0, 1},  // orthogonal
		{1, 0},  // identical direction
		{-1, 0}, // opposite
		{1, 1},  // 45 degrees
	})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{2, 0}, 4)
	require.NoError(t, err)
	require.Len(t, hits, 4)

	assert.Equal(t, []int{1, 3, 0, 2}, []int{hits[0].Position, hits[1].Position, hits[2].Position, hits[3].Position})
	assert.InDelta(t, 0, hits[0].Distance, 1e-9)
	assert.InDelta(t, 1, hits[2].Distance, 1e-9)
	assert.InDelta(t, 2, hits[3].Distance, 1e-9)
	assert.InDelta(t, 1, hits[0].Similarity(), 1e-9)
}

func TestSearch_MagnitudeIgnored(t *testing.T) {
	idx, err := New([][]float32{{10, 0}, {0.001, 0}})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{3, 0}, 2)
	require.NoError(t, err)
	assert.InDelta(t, hits[0].Distance, hits[1].Distance, 1e-9)
}

func TestSearch_ClampsK(t *testing.T) {
	idx, err := New([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = idx.Search(context.Background(), []float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_ZeroVectors(t *testing.T) {
	idx, err := New([][]float32{{0, 0}, {1, 0}})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{0, 0}, 2)
	require.NoError(t, err)
	for _, h := range hits {
		assert.InDelta(t, 1, h.Distance, 1e-9)
	}
}

func TestSearch_QueryDimensionMismatch(t *testing.T) {
	idx, err := New([][]float32{{1, 0}})
	require.NoError(t, err)

	_, err = idx.Search(context.Background(), []float32{1, 0, 0}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearch_CancelledContext(t *testing.T) {
	idx, err := New([][]float32{{1, 0}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = idx.Search(ctx, []float32{1, 0}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_Concurrent(t *testing.T) {
	idx, err := NewFactory().Build(context.Background(), [][]float32{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hits, err := idx.Search(context.Background(), []float32{1, 0}, 1)
			assert.NoError(t, err)
			assert.Equal(t, 0, hits[0].Position)
		}()
	}
	wg.Wait()
}

func TestEmptyIndex(t *testing.T) {
	idx, err := New(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len())

	hits, err := idx.Search(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NoError(t, idx.Close())
}

func TestSearch_TiesKeepPositionOrder(t *testing.T) {
	idx, err := New([][]float32{{0, 1}, {1, 0}, {0, 1}, {1, 0}})
	require.NoError(t, err)

	hits, err := idx.Search(context.Background(), []float32{1, 0}, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, 3, hits[1].Position)
	assert.Equal(t, 0, hits[2].Position)
	assert.Equal(t, 2, hits[3].Position)
}
