package vectorize

import "errors"

var (
	// ErrEmptyDocument indicates the document has no extractable text.
	ErrEmptyDocument = errors.New("document has no text content")

	// ErrEmbeddingFailed indicates the embedding provider failed.
	ErrEmbeddingFailed = errors.New("embedding generation failed")

	// ErrEmbeddingMismatch indicates the provider returned a different
	// number of vectors than texts submitted.
	ErrEmbeddingMismatch = errors.New("embedding count does not match chunk count")
)
