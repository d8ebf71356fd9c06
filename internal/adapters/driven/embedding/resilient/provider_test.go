package resilient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// mockEncoder implements driven.EmbeddingService for testing.
type mockEncoder struct {
	mock.Mock
}

func (m *mockEncoder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	v, _ := args.Get(0).([]float32)
	return v, args.Error(1)
}

func (m *mockEncoder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	v, _ := args.Get(0).([][]float32)
	return v, args.Error(1)
}

func (m *mockEncoder) Dimensions() int   { return 3 }
func (m *mockEncoder) ModelName() string { return "mock-minilm" }

func (m *mockEncoder) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockEncoder) Close() error { return nil }

func TestInit_Healthy(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(nil)
	enc.On("EmbedBatch", mock.Anything, []string{"calm cat"}).Return([][]float32{{1, 2, 3}}, nil)

	p := New(enc, Config{})
	require.NoError(t, p.Init(context.Background()))
	assert.False(t, p.IsDegraded())

	v, err := p.Embed(context.Background(), "calm cat")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, v)
	assert.Equal(t, "mock-minilm", p.ModelName())
	enc.AssertExpectations(t)
}

func TestInit_FailureEntersDegradedMode(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	p := New(enc, Config{})
	err := p.Init(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.True(t, p.IsDegraded())

	v, err := p.Embed(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, v, 3)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(0))
		assert.Less(t, x, float32(1))
	}
	enc.AssertNotCalled(t, "EmbedBatch", mock.Anything, mock.Anything)
}

func TestInit_NilEncoder(t *testing.T) {
	p := New(nil, Config{Dimensions: 5})

	assert.ErrorIs(t, p.Init(context.Background()), domain.ErrEmbeddingUnavailable)
	assert.True(t, p.IsDegraded())
	assert.Equal(t, "none", p.ModelName())

	out, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 5)
	assert.NotEqual(t, out[0], out[1])
}

func TestEmbed_DegradedIsSeeded(t *testing.T) {
	a := New(nil, Config{Dimensions: 4, Seed: 42})
	b := New(nil, Config{Dimensions: 4, Seed: 42})
	_ = a.Init(context.Background())
	_ = b.Init(context.Background())

	va, _ := a.Embed(context.Background(), "x")
	vb, _ := b.Embed(context.Background(), "x")
	assert.Equal(t, va, vb)
}

func TestEmbed_EncoderErrorSurfaces(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(nil)
	enc.On("EmbedBatch", mock.Anything, mock.Anything).Return(nil, errors.New("model crashed"))

	p := New(enc, Config{})
	require.NoError(t, p.Init(context.Background()))

	_, err := p.Embed(context.Background(), "x")
	assert.EqualError(t, err, "model crashed")
	assert.False(t, p.IsDegraded())
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(nil)
	enc.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float32{{1, 2}}, nil)

	p := New(enc, Config{})
	require.NoError(t, p.Init(context.Background()))

	_, err := p.Embed(context.Background(), "x")
	assert.ErrorContains(t, err, "want 3")
}

func TestEmbed_BreakerOpens(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(nil)
	enc.On("EmbedBatch", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	p := New(enc, Config{FailureThreshold: 2, OpenTimeout: time.Hour})
	require.NoError(t, p.Init(context.Background()))

	for i := 0; i < 2; i++ {
		_, err := p.Embed(context.Background(), "x")
		require.Error(t, err)
	}
	assert.Equal(t, "open", p.BreakerState())

	_, err := p.Embed(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	enc.AssertNumberOfCalls(t, "EmbedBatch", 2)
}

func TestEmbed_ThrottleHonoursContext(t *testing.T) {
	enc := new(mockEncoder)
	enc.On("Ping", mock.Anything).Return(nil)
	enc.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float32{{1, 2, 3}}, nil)

	p := New(enc, Config{RatePerSecond: 0.001})
	require.NoError(t, p.Init(context.Background()))

	_, err := p.Embed(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = p.Embed(ctx, "second")
	assert.Error(t, err)
	enc.AssertNumberOfCalls(t, "EmbedBatch", 1)
}

func TestEmbedBatch_Empty(t *testing.T) {
	p := New(new(mockEncoder), Config{})
	out, err := p.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
