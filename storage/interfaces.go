package storage

import (
	"context"

	"github.com/praxisworks/recall/core"
)

// ChunkRepository is the persistence contract of the embedding store.
// Implementations must be thread-safe and support concurrent access.
type ChunkRepository interface {
	// ReplaceDocumentChunks atomically replaces every chunk of a document
	// with the given set. On error the prior chunk set remains intact;
	// readers never observe a mix of old and new chunks.
	ReplaceDocumentChunks(ctx context.Context, documentId core.ID, chunks []*core.Chunk) error

	// GetDocumentChunks retrieves all chunks of a document, ordered by ordinal.
	// Returns an empty slice when the document has no chunks.
	GetDocumentChunks(ctx context.Context, documentId core.ID) ([]*core.Chunk, error)

	// DeleteDocumentChunks removes all chunks of a document.
	// Deleting a document without chunks is not an error.
	DeleteDocumentChunks(ctx context.Context, documentId core.ID) error

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// PutChunk writes a single chunk and its document index entry,
	// overwriting any existing chunk with the same ID. Does not remove
	// other chunks of the document; use ReplaceDocumentChunks for that.
	PutChunk(ctx context.Context, chunk *core.Chunk) error

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// FindSimilar scans canonical chunk vectors and returns the chunks most
	// similar to the given vector, ordered by similarity (highest first).
	// Only chunks whose document appears in scope are considered; a nil
	// scope matches nothing. maxScan > 0 caps how many chunks are examined,
	// trading recall for latency; 0 scans everything in scope.
	FindSimilar(ctx context.Context, vector []float32, scope map[core.ID]bool, limit, maxScan int) ([]*core.ChunkMatch, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentSource is the document corpus accessor owned by the document
// management collaborator. Results are already access-control-scoped to
// the given user.
type DocumentSource interface {
	GetDocuments(ctx context.Context, userId string) ([]*core.Document, error)
}

// HistorySource is the chat history accessor owned by the conversation
// collaborator.
type HistorySource interface {
	GetRecentTurns(ctx context.Context, conversationId string, limit int) ([]core.Turn, error)
}
