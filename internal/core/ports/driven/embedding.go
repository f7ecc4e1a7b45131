package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, dense scoring is disabled and
// queries fall back to sparse or lexical strategies.
//
// Any error returned from Embed is treated as "no embedding produced":
// callers absorb it and degrade, they never propagate it to their own
// callers.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request. Used once at construction to resolve the query strategy.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
