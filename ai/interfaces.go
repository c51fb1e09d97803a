package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// ProviderId returns the stable identifier embeddings from this
	// embedder are stored under in a chunk's embedding map.
	ProviderId() string
}

// QueryClassifier decides whether a query warrants a knowledge-base lookup
// and rewrites it for better retrieval. Its output comes from an external
// reasoning model and must be validated before use.
// Implementations must be thread-safe for concurrent use.
type QueryClassifier interface {
	// ClassifyQuery sends the assembled classification prompt to the
	// reasoning model and returns its parsed decision.
	// Returns an error if the model is unreachable or the response cannot
	// be parsed; callers are expected to fall back rather than propagate.
	ClassifyQuery(ctx context.Context, prompt string) (Classification, error)
}

// Classification is the raw decision returned by the reasoning model,
// prior to validation.
type Classification struct {
	// NeedsSearch reports whether a knowledge-base lookup is warranted.
	NeedsSearch bool `json:"needsSearch"`

	// EnhancedQuery is the rewritten query: segmented, filler stripped,
	// spelling corrected, vague references resolved from history.
	EnhancedQuery string `json:"enhancedQuery"`

	// KeywordWeight and VectorWeight steer result fusion; the model is
	// instructed to make them sum to 1.
	KeywordWeight float64 `json:"keywordWeight"`
	VectorWeight  float64 `json:"vectorWeight"`

	// Reasoning is the model's free-text explanation, kept for operators.
	Reasoning string `json:"reasoning"`
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and QueryClassifier instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// QueryClassifier returns the query classification service.
	// The returned QueryClassifier is safe for concurrent use.
	QueryClassifier() QueryClassifier

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
