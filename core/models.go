package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Document IDs are assigned by the document management collaborator;
// chunk IDs are generated via content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SourceType identifies which retrieval strategy produced a search result.
type SourceType int

const (
	// SourceFilename marks a result matched against a document's display name.
	SourceFilename SourceType = iota + 1
	// SourceKeyword marks a result from lexical relevance matching.
	SourceKeyword
	// SourceSemantic marks a result from vector similarity matching.
	SourceSemantic
)

// String returns the wire name of the source type.
func (s SourceType) String() string {
	switch s {
	case SourceFilename:
		return "filename"
	case SourceKeyword:
		return "keyword"
	case SourceSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// Priority orders source types for fusion tie-breaking.
// Lower values win: filename beats keyword beats semantic.
func (s SourceType) Priority() int {
	return int(s)
}

// Document is a knowledge-base document as delivered by the document
// management collaborator. The engine treats it as read-mostly input;
// only its chunks and embeddings are owned here.
type Document struct {
	Id        ID
	Name      string
	Content   string
	MimeType  string
	Tags      []string
	UserId    string
	CreatedAt time.Time
}

// Chunk is a bounded slice of a document's extracted text, the unit of
// embedding. Embeddings holds at most one vector per provider; Canonical
// names the provider whose vector is currently authoritative for
// semantic search.
type Chunk struct {
	Id         ID
	DocumentId ID
	Ordinal    int
	Text       string
	Embeddings map[string][]float32
	Canonical  string
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// CanonicalVector returns the authoritative embedding for the chunk,
// or nil if the chunk has not been vectorized.
func (c *Chunk) CanonicalVector() []float32 {
	if c.Canonical == "" {
		return nil
	}
	return c.Embeddings[c.Canonical]
}

// ChunkIdFor generates the deterministic ID for a document's chunk at the
// given ordinal. Re-vectorizing the same document yields the same chunk IDs.
func ChunkIdFor(documentId ID, ordinal int) ID {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint64(buf, uint64(documentId))
	binary.LittleEndian.PutUint32(buf[8:], uint32(ordinal))
	return IDFromContent(string(buf))
}

// SearchResult is a single ranked hit. SearchScore is the fused ranking
// value; Similarity is the raw strategy-specific score in [0,1].
type SearchResult struct {
	DocumentId  ID
	ChunkId     ID // zero when the hit is document-level (filename, keyword)
	SearchScore float64
	SourceType  SourceType
	Similarity  float64
	Snippet     string
}

// ChunkMatch is a chunk paired with its raw similarity to a query vector.
type ChunkMatch struct {
	Chunk      *Chunk
	Similarity float64
}

// Turn is a single conversation turn from the chat history collaborator.
type Turn struct {
	Role    string
	Content string
}

// PreprocessedQuery is the outcome of query classification and rewriting.
// KeywordWeight and VectorWeight sum to roughly 1.0 on the oracle path and
// are exactly 0.5 each on the fallback path.
type PreprocessedQuery struct {
	OriginalQuery string
	EnhancedQuery string
	NeedsSearch   bool
	KeywordWeight float64
	VectorWeight  float64
	Reasoning     string
}
