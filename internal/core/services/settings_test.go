package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/petmatch/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.Equal(t, 5, settings.Match.Neighbors)
	assert.Equal(t, "all-minilm", settings.Embedding.Model)
	assert.Equal(t, 384, settings.Embedding.Dimensions)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("catalog.format", "sqlite")
	_ = store.Set("catalog.watch", true)
	_ = store.Set("match.neighbors", int64(9))
	_ = store.Set("server.rate_window", "30s")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, domain.EmbeddingProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 3072, settings.Embedding.Dimensions, "known model size applies")
	assert.Equal(t, domain.CatalogFormatSQLite, settings.Catalog.Format)
	assert.True(t, settings.Catalog.Watch)
	assert.Equal(t, 9, settings.Match.Neighbors)
	assert.Equal(t, 30*time.Second, settings.Server.RateWindow)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")
	_ = store.Set("catalog.format", "xlsx")
	_ = store.Set("server.rate_window", "soon")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Catalog.Format, settings.Catalog.Format)
	assert.Equal(t, defaults.Server.RateWindow, settings.Server.RateWindow)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Embedding.Provider = domain.EmbeddingProviderHashing
	settings.Embedding.Model = "hashing-v1"
	settings.Embedding.Dimensions = 256
	settings.Embedding.RatePerSecond = 4
	settings.Catalog.Path = "shelter.db"
	settings.Server.RateWindow = 10 * time.Second
	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)

	_, hasKey := store.Get("embedding.api_key")
	assert.False(t, hasKey, "empty API key is not written")
}

func TestSettingsService_Set(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.Set("match.neighbors", "7"))
	require.NoError(t, service.Set("embedding.rate_per_second", "2.5"))
	require.NoError(t, service.Set("catalog.watch", "true"))
	require.NoError(t, service.Set("server.rate_window", "90s"))
	require.NoError(t, service.Set("Embedding.Provider", "hashing"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 7, settings.Match.Neighbors)
	assert.Equal(t, 2.5, settings.Embedding.RatePerSecond)
	assert.True(t, settings.Catalog.Watch)
	assert.Equal(t, 90*time.Second, settings.Server.RateWindow)
	assert.Equal(t, domain.EmbeddingProviderHashing, settings.Embedding.Provider)
}

func TestSettingsService_Set_Rejects(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	tests := []struct{ key, value string }{
		{"no.such_key", "x"},
		{"match.neighbors", "five"},
		{"catalog.watch", "maybe"},
		{"server.rate_window", "1 minute"},
		{"embedding.provider", "cohere"},
		{"catalog.format", "parquet"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetEmbeddingProvider(domain.EmbeddingProviderOllama, "", ""))
	settings, _ := service.Get()
	assert.Equal(t, "all-minilm", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)
	assert.Equal(t, 384, settings.Embedding.Dimensions)

	require.NoError(t, service.SetEmbeddingProvider(domain.EmbeddingProviderOpenAI, "text-embedding-3-small", "sk-test"))
	settings, _ = service.Get()
	assert.Equal(t, "", settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
	assert.Equal(t, 1536, settings.Embedding.Dimensions)

	assert.Error(t, service.SetEmbeddingProvider(domain.EmbeddingProviderOpenAI, "", ""))
	assert.Error(t, service.SetEmbeddingProvider("cohere", "", ""))
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	assert.NoError(t, service.Validate())

	_ = store.Set("embedding.provider", "openai")
	assert.Error(t, service.Validate(), "openai needs a key")
	_ = store.Set("embedding.api_key", "sk")
	assert.NoError(t, service.Validate())

	_ = store.Set("match.neighbors", -1)
	assert.Error(t, service.Validate())
	_ = store.Set("match.neighbors", 3)

	_ = store.Set("log.level", "chatty")
	assert.Error(t, service.Validate())
	_ = store.Set("log.level", "debug")

	_ = store.Set("log.format", "xml")
	assert.Error(t, service.Validate())
}

func TestSettingKeys_CoverKinds(t *testing.T) {
	keys := SettingKeys()
	assert.Len(t, keys, len(settingKinds))
	for _, k := range keys {
		_, ok := settingKinds[k]
		assert.True(t, ok, k)
	}
	assert.IsNonDecreasing(t, keys)
}
