package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingProvider_IsValid(t *testing.T) {
	for _, p := range AllEmbeddingProviders() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, EmbeddingProvider("anthropic").IsValid())
	assert.Equal(t, unknownDescription, EmbeddingProvider("x").Description())
}

func TestEmbeddingProvider_Flags(t *testing.T) {
	assert.True(t, EmbeddingProviderOpenAI.RequiresAPIKey())
	assert.False(t, EmbeddingProviderOllama.RequiresAPIKey())
	assert.True(t, EmbeddingProviderHashing.IsLocal())
	assert.False(t, EmbeddingProviderOpenAI.IsLocal())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings EmbeddingSettings
		want     bool
	}{
		{"ollama", EmbeddingSettings{Provider: EmbeddingProviderOllama}, true},
		{"openai without key", EmbeddingSettings{Provider: EmbeddingProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: EmbeddingProviderOpenAI, APIKey: "sk"}, true},
		{"empty", EmbeddingSettings{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, EmbeddingProviderOllama, s.Embedding.Provider)
	assert.Equal(t, 384, s.Embedding.Dimensions)
	assert.Equal(t, EmbeddingDimensions()[s.Embedding.Model], s.Embedding.Dimensions)
	assert.Equal(t, 5, s.Match.Neighbors)
	assert.True(t, s.Catalog.Format.IsValid())
}

func TestDefaultEmbeddingModels_HaveDimensions(t *testing.T) {
	dims := EmbeddingDimensions()
	for provider, model := range DefaultEmbeddingModels() {
		_, ok := dims[model]
		assert.True(t, ok, "no dimensions for %s default model %s", provider, model)
	}
}
