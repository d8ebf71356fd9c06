package domain

import "time"

const unknownDescription = "Unknown"

// EmbeddingProvider identifies the encoder behind the embedding service.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderOllama is a local Ollama instance.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"

	// EmbeddingProviderOpenAI is the OpenAI API or a compatible server.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"

	// EmbeddingProviderHashing is the offline feature-hashing encoder.
	EmbeddingProviderHashing EmbeddingProvider = "hashing"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderOllama, EmbeddingProviderOpenAI, EmbeddingProviderHashing:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingProviderOpenAI
}

// IsLocal returns true if this provider runs on the local machine.
func (p EmbeddingProvider) IsLocal() bool {
	return p == EmbeddingProviderOllama || p == EmbeddingProviderHashing
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case EmbeddingProviderOllama:
		return "Ollama (local)"
	case EmbeddingProviderOpenAI:
		return "OpenAI (cloud)"
	case EmbeddingProviderHashing:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// CatalogFormat identifies how the catalog is stored.
type CatalogFormat string

// Available catalog formats.
const (
	CatalogFormatCSV    CatalogFormat = "csv"
	CatalogFormatSQLite CatalogFormat = "sqlite"
)

// IsValid returns true if the format is recognised.
func (f CatalogFormat) IsValid() bool {
	return f == CatalogFormatCSV || f == CatalogFormatSQLite
}

// String returns the string representation.
func (f CatalogFormat) String() string {
	return string(f)
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the encoder backend.
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions is the vector size the encoder emits.
	Dimensions int

	// RatePerSecond caps encoder calls; 0 disables throttling.
	RatePerSecond float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// CatalogSettings holds catalog source configuration.
type CatalogSettings struct {
	// Path is the catalog file (CSV file or SQLite database).
	Path string

	// Format selects the loader.
	Format CatalogFormat

	// Watch rebuilds the index when the file changes.
	Watch bool
}

// MatchSettings holds retrieval defaults.
type MatchSettings struct {
	// Neighbors is the default number of matches returned.
	Neighbors int
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// RateLimit is the number of requests allowed per client per window; 0 disables.
	RateLimit int

	// RateWindow is the rate limit window.
	RateWindow time.Duration
}

// LogSettings holds logging configuration.
type LogSettings struct {
	// Level is debug, info, warn or error.
	Level string

	// Format is console or json.
	Format string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings
	Catalog   CatalogSettings
	Match     MatchSettings
	Server    ServerSettings
	Log       LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The default encoder is Ollama's all-minilm (all-MiniLM-L6-v2, 384 dimensions).
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider:      EmbeddingProviderOllama,
			Model:         "all-minilm",
			Dimensions:    384,
			RatePerSecond: 0,
		},
		Catalog: CatalogSettings{
			Path:   "data/animals.csv",
			Format: CatalogFormatCSV,
		},
		Match: MatchSettings{
			Neighbors: 5,
		},
		Server: ServerSettings{
			Addr:       ":8080",
			RateLimit:  60,
			RateWindow: time.Minute,
		},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// AllEmbeddingProviders returns every embedding provider.
func AllEmbeddingProviders() []EmbeddingProvider {
	return []EmbeddingProvider{
		EmbeddingProviderOllama,
		EmbeddingProviderOpenAI,
		EmbeddingProviderHashing,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[EmbeddingProvider]string {
	return map[EmbeddingProvider]string{
		EmbeddingProviderOllama:  "all-minilm",
		EmbeddingProviderOpenAI:  "text-embedding-3-small",
		EmbeddingProviderHashing: "hashing-v1",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Offline
		"hashing-v1": 384,
	}
}
