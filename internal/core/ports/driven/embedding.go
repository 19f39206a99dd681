package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from SlideIndex which stores and searches
// vectors. EmbeddingService generates vectors; SlideIndex stores them.
//
// Implementations may include:
//   - OpenAI-compatible endpoints (text-embedding-3-small, -3-large)
//   - Ollama (nomic-embed-text, all-minilm)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// embeddings[i] corresponds to texts[i]. On any transport or
	// provider error the whole batch has failed; callers must treat
	// an empty result or a length mismatch against the input as
	// total failure, never as partial success.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This is determined by the model and must match the SlideIndex
	// collection configuration.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
