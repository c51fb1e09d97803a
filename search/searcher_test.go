package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisworks/recall/ai/mock"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
	badgerstore "github.com/praxisworks/recall/storage/badger"
)

type stubDocuments struct {
	docs []*core.Document
	err  error
}

func (s *stubDocuments) GetDocuments(ctx context.Context, userId string) ([]*core.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func newTestSearcher(t *testing.T, docs []*core.Document) (*Searcher, storage.ChunkRepository, *mock.MockEmbedder) {
	t.Helper()
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	embedder := mock.NewMockEmbedder()
	searcher := NewSearcher(&stubDocuments{docs: docs}, store, embedder)
	return searcher, store, embedder
}

func vectorizeForTest(t *testing.T, store storage.ChunkRepository, embedder *mock.MockEmbedder, doc *core.Document) {
	t.Helper()
	ctx := context.Background()
	vector, err := embedder.EmbedText(ctx, doc.Content)
	require.NoError(t, err)
	chunk := &core.Chunk{
		Id:         core.ChunkIdFor(doc.Id, 0),
		DocumentId: doc.Id,
		Ordinal:    0,
		Text:       doc.Content,
		Embeddings: map[string][]float32{embedder.ProviderId(): vector},
		Canonical:  embedder.ProviderId(),
	}
	require.NoError(t, store.ReplaceDocumentChunks(ctx, doc.Id, []*core.Chunk{chunk}))
}

func TestSearchEmptyQuery(t *testing.T) {
	searcher, _, _ := newTestSearcher(t, []*core.Document{{Id: 1, Name: "doc"}})

	results, err := searcher.Search(context.Background(), "   ", "u1", DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchCorpusFailure(t *testing.T) {
	store, err := badgerstore.NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	searcher := NewSearcher(&stubDocuments{err: errors.New("acl service down")}, store, mock.NewMockEmbedder())
	_, err = searcher.Search(context.Background(), "query", "u1", DefaultOptions())
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestSearchFilenameBeatsContent(t *testing.T) {
	docs := []*core.Document{
		{Id: 1, Name: "Policy.pdf", Content: "Internal policy document."},
		{Id: 2, Name: "notes.txt", Content: "The policy says refunds take 14 days. policy policy policy"},
	}
	searcher, store, embedder := newTestSearcher(t, docs)
	for _, doc := range docs {
		vectorizeForTest(t, store, embedder, doc)
	}

	results, err := searcher.Search(context.Background(), "policy", "u1", DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, core.ID(1), results[0].DocumentId)
	assert.Equal(t, core.SourceFilename, results[0].SourceType)
	assert.Equal(t, float64(FilenameScore), results[0].SearchScore)
}

func TestSearchSemanticFindsVectorizedContent(t *testing.T) {
	docs := []*core.Document{
		{Id: 1, Name: "a.txt", Content: "completely unrelated text about gardening"},
		{Id: 2, Name: "b.txt", Content: "quarterly financial report for shareholders"},
	}
	searcher, store, embedder := newTestSearcher(t, docs)
	for _, doc := range docs {
		vectorizeForTest(t, store, embedder, doc)
	}

	// same text as doc 2's chunk embeds to the same mock vector
	results, err := searcher.Search(context.Background(), "quarterly financial report for shareholders", "u1", Options{
		Meaning: true,
		Limit:   5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, core.ID(2), results[0].DocumentId)
	assert.Equal(t, core.SourceSemantic, results[0].SourceType)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-4)
	assert.NotZero(t, results[0].ChunkId)
}

func TestSearchSemanticDegrades(t *testing.T) {
	docs := []*core.Document{
		{Id: 1, Name: "Policy.pdf", Content: "policy content"},
	}
	searcher, store, embedder := newTestSearcher(t, docs)
	vectorizeForTest(t, store, embedder, docs[0])

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	results, err := searcher.Search(context.Background(), "policy", "u1", DefaultOptions())
	require.NoError(t, err, "semantic failure must not fail the search")
	require.NotEmpty(t, results, "filename and keyword hits still returned")
	for _, r := range results {
		assert.NotEqual(t, core.SourceSemantic, r.SourceType)
	}
}

func TestSearchAllStrategiesFailed(t *testing.T) {
	docs := []*core.Document{{Id: 1, Name: "doc", Content: "content"}}
	searcher, _, embedder := newTestSearcher(t, docs)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("down")
	}

	_, err := searcher.Search(context.Background(), "query", "u1", Options{Meaning: true, Limit: 5})
	assert.ErrorIs(t, err, ErrAllStrategiesFailed)
}

func TestSearchNoStrategiesEnabled(t *testing.T) {
	searcher, _, _ := newTestSearcher(t, []*core.Document{{Id: 1, Name: "doc"}})

	results, err := searcher.Search(context.Background(), "query", "u1", Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDeduplicatesAcrossStrategies(t *testing.T) {
	docs := []*core.Document{
		{Id: 1, Name: "refund-policy.md", Content: "refund policy details and procedures"},
	}
	searcher, store, embedder := newTestSearcher(t, docs)
	vectorizeForTest(t, store, embedder, docs[0])

	// matches by keyword and semantics at once
	results, err := searcher.Search(context.Background(), "refund policy details and procedures", "u1", DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 1, "one document must yield one fused result")
	assert.Equal(t, core.SourceKeyword, results[0].SourceType,
		"lexical hit outscores the semantic hit for the same document")
}
