package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Implementations must be deterministic for a fixed model: the same text
// always yields the same vector, and every vector has Dimensions() entries.
//
// Implementations may include:
//   - Ollama (all-minilm, nomic-embed-text)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Offline feature hashing
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight request.
	// It is used once at startup to decide whether the encoder is usable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// DegradationReporter is implemented by embedding services that can run
// without their encoder. The vectors they produce in that mode carry no
// meaning; callers surface the flag rather than infer it from output.
type DegradationReporter interface {
	// IsDegraded returns true when the encoder is unavailable.
	IsDegraded() bool
}
