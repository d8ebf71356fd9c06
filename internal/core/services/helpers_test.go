package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/vector/brute"
	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// --- Test embedders ---

// vocabulary gives keywordEmbedder one dimension per word.
var vocabulary = []string{
	"energetic", "playful", "active", "play", "calm", "relaxed", "quiet",
	"independent", "affectionate", "senior", "young", "children", "puppy", "cat",
}

// keywordEmbedder counts vocabulary words. It is deterministic and has no
// hash collisions, so test expectations can be worked out by hand.
type keywordEmbedder struct {
	degraded bool
}

func (e *keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, len(vocabulary))
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		for i, w := range vocabulary {
			if word == w {
				v[i]++
			}
		}
	}
	return v, nil
}

func (e *keywordEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i], _ = e.Embed(ctx, t)
	}
	return out, nil
}

func (e *keywordEmbedder) Dimensions() int              { return len(vocabulary) }
func (e *keywordEmbedder) ModelName() string            { return "keywords" }
func (e *keywordEmbedder) Ping(_ context.Context) error { return nil }
func (e *keywordEmbedder) Close() error                 { return nil }
func (e *keywordEmbedder) IsDegraded() bool             { return e.degraded }

// mockEmbedder implements driven.EmbeddingService with testify/mock.
type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	v, _ := args.Get(0).([]float32)
	return v, args.Error(1)
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	v, _ := args.Get(0).([][]float32)
	return v, args.Error(1)
}

func (m *mockEmbedder) Dimensions() int              { return 2 }
func (m *mockEmbedder) ModelName() string            { return "mock" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// --- Fixtures ---

func animal(id int64, species domain.Species, description string) domain.Animal {
	return domain.Animal{
		ID:                     id,
		Species:                species,
		Name:                   "Animal",
		PersonalityDescription: description,
	}
}

func newCatalog(t *testing.T, animals ...domain.Animal) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(animals)
	require.NoError(t, err)
	return c
}

// newReadyService builds a keyword-embedding match service over animals.
func newReadyService(t *testing.T, animals ...domain.Animal) *MatchService {
	t.Helper()
	svc := NewMatchService(&keywordEmbedder{}, brute.NewFactory())
	require.NoError(t, svc.Rebuild(context.Background(), newCatalog(t, animals...)))
	return svc
}

func ptr[T any](v T) *T { return &v }
