package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/petmatch/internal/core/domain"
	"github.com/custodia-labs/petmatch/internal/core/ports/driven"
	"github.com/custodia-labs/petmatch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider   = "embedding.provider"
	keyEmbedModel      = "embedding.model"
	keyEmbedBaseURL    = "embedding.base_url"
	keyEmbedAPIKey     = "embedding.api_key"
	keyEmbedDims       = "embedding.dimensions"
	keyEmbedRate       = "embedding.rate_per_second"
	keyCatalogPath     = "catalog.path"
	keyCatalogFormat   = "catalog.format"
	keyCatalogWatch    = "catalog.watch"
	keyMatchNeighbors  = "match.neighbors"
	keyServerAddr      = "server.addr"
	keyServerRateLimit = "server.rate_limit"
	keyServerWindow    = "server.rate_window"
	keyLogLevel        = "log.level"
	keyLogFormat       = "log.format"
)

// settingKind is the value type stored under a key.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
)

var settingKinds = map[string]settingKind{
	keyEmbedProvider:   kindString,
	keyEmbedModel:      kindString,
	keyEmbedBaseURL:    kindString,
	keyEmbedAPIKey:     kindString,
	keyEmbedDims:       kindInt,
	keyEmbedRate:       kindFloat,
	keyCatalogPath:     kindString,
	keyCatalogFormat:   kindString,
	keyCatalogWatch:    kindBool,
	keyMatchNeighbors:  kindInt,
	keyServerAddr:      kindString,
	keyServerRateLimit: kindInt,
	keyServerWindow:    kindDuration,
	keyLogLevel:        kindString,
	keyLogFormat:       kindString,
}

// SettingKeys returns every recognised settings key in sorted order.
func SettingKeys() []string {
	return []string{
		keyCatalogFormat, keyCatalogPath, keyCatalogWatch,
		keyEmbedAPIKey, keyEmbedBaseURL, keyEmbedDims, keyEmbedModel, keyEmbedProvider, keyEmbedRate,
		keyLogFormat, keyLogLevel,
		keyMatchNeighbors,
		keyServerAddr, keyServerRateLimit, keyServerWindow,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings. Missing or invalid values
// fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider:      s.getProvider(defaults.Embedding.Provider),
			Model:         s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:       s.configStore.GetString(keyEmbedBaseURL), // No default - adapters pick their own
			APIKey:        s.configStore.GetString(keyEmbedAPIKey),
			Dimensions:    s.getInt(keyEmbedDims, defaults.Embedding.Dimensions),
			RatePerSecond: s.configStore.GetFloat(keyEmbedRate),
		},
		Catalog: domain.CatalogSettings{
			Path:   s.getString(keyCatalogPath, defaults.Catalog.Path),
			Format: s.getCatalogFormat(defaults.Catalog.Format),
			Watch:  s.getBool(keyCatalogWatch, defaults.Catalog.Watch),
		},
		Match: domain.MatchSettings{
			Neighbors: s.getInt(keyMatchNeighbors, defaults.Match.Neighbors),
		},
		Server: domain.ServerSettings{
			Addr:       s.getString(keyServerAddr, defaults.Server.Addr),
			RateLimit:  s.getInt(keyServerRateLimit, defaults.Server.RateLimit),
			RateWindow: s.getDuration(keyServerWindow, defaults.Server.RateWindow),
		},
		Log: domain.LogSettings{
			Level:  s.getString(keyLogLevel, defaults.Log.Level),
			Format: s.getString(keyLogFormat, defaults.Log.Format),
		},
	}

	// A model without a configured size takes the known size for that model.
	if _, set := s.configStore.Get(keyEmbedDims); !set {
		if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
			settings.Embedding.Dimensions = d
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyEmbedRate, settings.Embedding.RatePerSecond},
		{keyCatalogPath, settings.Catalog.Path},
		{keyCatalogFormat, settings.Catalog.Format.String()},
		{keyCatalogWatch, settings.Catalog.Watch},
		{keyMatchNeighbors, settings.Match.Neighbors},
		{keyServerAddr, settings.Server.Addr},
		{keyServerRateLimit, settings.Server.RateLimit},
		{keyServerWindow, settings.Server.RateWindow.String()},
		{keyLogLevel, settings.Log.Level},
		{keyLogFormat, settings.Log.Format},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	var err error
	switch kind {
	case kindInt:
		parsed, err = strconv.Atoi(value)
	case kindFloat:
		parsed, err = strconv.ParseFloat(value, 64)
	case kindBool:
		parsed, err = strconv.ParseBool(value)
	case kindDuration:
		var d time.Duration
		d, err = time.ParseDuration(value)
		parsed = d.String()
	default:
		parsed = value
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", domain.ErrInvalidInput, key, value, err)
	}

	switch key {
	case keyEmbedProvider:
		if !domain.EmbeddingProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, value)
		}
	case keyCatalogFormat:
		if !domain.CatalogFormat(value).IsValid() {
			return fmt.Errorf("%w: invalid catalog format: %s", domain.ErrInvalidInput, value)
		}
	}

	return s.configStore.Set(key, parsed)
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	// Only Ollama needs a local base URL
	if provider == domain.EmbeddingProviderOllama {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	// Update vector dimensions based on model
	if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
		settings.Embedding.Dimensions = d
	}

	return s.Save(settings)
}

// Validate checks that current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("embedding provider %q is not configured", settings.Embedding.Provider)
	}
	if settings.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", settings.Embedding.Dimensions)
	}
	if settings.Embedding.RatePerSecond < 0 {
		return fmt.Errorf("embedding rate must not be negative, got %g", settings.Embedding.RatePerSecond)
	}
	if settings.Catalog.Path == "" {
		return fmt.Errorf("catalog path is empty")
	}
	if settings.Match.Neighbors < 1 {
		return fmt.Errorf("match neighbors must be at least 1, got %d", settings.Match.Neighbors)
	}
	switch settings.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", settings.Log.Level)
	}
	switch settings.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", settings.Log.Format)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(defaultVal domain.EmbeddingProvider) domain.EmbeddingProvider {
	provider := domain.EmbeddingProvider(s.configStore.GetString(keyEmbedProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getCatalogFormat(defaultVal domain.CatalogFormat) domain.CatalogFormat {
	format := domain.CatalogFormat(s.configStore.GetString(keyCatalogFormat))
	if !format.IsValid() {
		return defaultVal
	}
	return format
}
