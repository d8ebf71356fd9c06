// Package ai provides factory functions for creating embedding adapters.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/embedding/hashing"
	ollamaembed "github.com/custodia-labs/petmatch/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/petmatch/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/petmatch/internal/adapters/driven/embedding/resilient"
	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// NewProvider creates the embedding provider the engine runs on.
//
// The provider is always returned. When the encoder cannot be created or
// does not answer, the provider runs degraded and the returned error says
// why, so callers can warn and carry on.
func NewProvider(ctx context.Context, settings *domain.EmbeddingSettings) (*resilient.Provider, error) {
	dims := 0
	if settings != nil {
		dims = settings.Dimensions
	}

	encoder, createErr := CreateEmbeddingService(settings)
	p := resilient.New(encoder, resilient.Config{
		RatePerSecond: rateOf(settings),
		Dimensions:    dims,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := p.Init(pingCtx); err != nil {
		if createErr != nil {
			return p, fmt.Errorf("%w: %w. Run 'petmatch settings set embedding.provider <name>' to fix",
				domain.ErrEmbeddingUnavailable, createErr)
		}
		return p, fmt.Errorf("%w. Run 'petmatch settings check' for details", err)
	}
	return p, nil
}

// ValidateEmbeddingConfig creates the configured encoder and pings it.
func ValidateEmbeddingConfig(ctx context.Context, settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the encoder selected by settings.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, errors.New("embedding is not configured")
	}
	if settings.Provider.RequiresAPIKey() && settings.APIKey == "" {
		return nil, fmt.Errorf("%s requires an API key (embedding.api_key)", settings.Provider)
	}

	switch settings.Provider {
	case domain.EmbeddingProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.EmbeddingProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.EmbeddingProviderHashing:
		return hashing.NewEmbeddingService(hashing.Config{Dimensions: settings.Dimensions}), nil

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := settings.Dimensions
	if dimensions == 0 {
		dimensions = domain.EmbeddingDimensions()[settings.Model]
	}
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func rateOf(settings *domain.EmbeddingSettings) float64 {
	if settings == nil {
		return 0
	}
	return settings.RatePerSecond
}
