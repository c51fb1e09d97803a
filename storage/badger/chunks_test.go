package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

func newTestStore(t *testing.T) *ChunkStore {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testChunk(docId core.ID, ordinal int, vector []float32) *core.Chunk {
	return &core.Chunk{
		Id:         core.ChunkIdFor(docId, ordinal),
		DocumentId: docId,
		Ordinal:    ordinal,
		Text:       fmt.Sprintf("chunk %d of document %d", ordinal, docId),
		Embeddings: map[string][]float32{"test": vector},
		Canonical:  "test",
	}
}

func TestPutAndGetChunk(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	chunk := testChunk(1, 0, []float32{1, 0})
	require.NoError(t, store.PutChunk(ctx, chunk))

	got, err := store.GetChunk(ctx, chunk.Id)
	require.NoError(t, err)
	assert.Equal(t, chunk.Text, got.Text)
	assert.Equal(t, chunk.Embeddings, got.Embeddings)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestGetChunkNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetChunk(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestReplaceDocumentChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	docId := core.ID(10)

	first := []*core.Chunk{
		testChunk(docId, 0, []float32{1, 0}),
		testChunk(docId, 1, []float32{0, 1}),
		testChunk(docId, 2, []float32{1, 1}),
	}
	require.NoError(t, store.ReplaceDocumentChunks(ctx, docId, first))

	got, err := store.GetDocumentChunks(ctx, docId)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, chunk := range got {
		assert.Equal(t, i, chunk.Ordinal, "chunks must come back in ordinal order")
	}

	// Replace with a smaller set; old chunks must be gone.
	second := []*core.Chunk{
		testChunk(docId, 0, []float32{0.5, 0.5}),
	}
	require.NoError(t, store.ReplaceDocumentChunks(ctx, docId, second))

	got, err = store.GetDocumentChunks(ctx, docId)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float32{0.5, 0.5}, got[0].Embeddings["test"])

	count, err := store.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "replaced chunks must not linger")
}

func TestReplaceRejectsForeignChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.ReplaceDocumentChunks(ctx, 1, []*core.Chunk{
		testChunk(2, 0, []float32{1}),
	})
	assert.Error(t, err)
}

func TestDeleteDocumentChunks(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocumentChunks(ctx, 1, []*core.Chunk{
		testChunk(1, 0, []float32{1, 0}),
		testChunk(1, 1, []float32{0, 1}),
	}))
	require.NoError(t, store.ReplaceDocumentChunks(ctx, 2, []*core.Chunk{
		testChunk(2, 0, []float32{1, 1}),
	}))

	require.NoError(t, store.DeleteDocumentChunks(ctx, 1))

	got, err := store.GetDocumentChunks(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Other documents untouched.
	got, err = store.GetDocumentChunks(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// Deleting again is not an error.
	assert.NoError(t, store.DeleteDocumentChunks(ctx, 1))
}

func TestFindSimilar(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocumentChunks(ctx, 1, []*core.Chunk{
		testChunk(1, 0, []float32{1, 0}),
	}))
	require.NoError(t, store.ReplaceDocumentChunks(ctx, 2, []*core.Chunk{
		testChunk(2, 0, []float32{0.9, 0.1}),
	}))
	require.NoError(t, store.ReplaceDocumentChunks(ctx, 3, []*core.Chunk{
		testChunk(3, 0, []float32{0, 1}),
	}))

	scope := map[core.ID]bool{1: true, 2: true, 3: true}
	matches, err := store.FindSimilar(ctx, []float32{1, 0}, scope, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, core.ID(1), matches[0].Chunk.DocumentId)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-6)
	assert.Equal(t, core.ID(2), matches[1].Chunk.DocumentId)
	assert.Equal(t, core.ID(3), matches[2].Chunk.DocumentId)
	assert.Greater(t, matches[1].Similarity, matches[2].Similarity)
}

func TestFindSimilarScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceDocumentChunks(ctx, 1, []*core.Chunk{
		testChunk(1, 0, []float32{1, 0}),
	}))
	require.NoError(t, store.ReplaceDocumentChunks(ctx, 2, []*core.Chunk{
		testChunk(2, 0, []float32{1, 0}),
	}))

	matches, err := store.FindSimilar(ctx, []float32{1, 0}, map[core.ID]bool{2: true}, 10, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, core.ID(2), matches[0].Chunk.DocumentId)

	// nil scope matches nothing
	matches, err = store.FindSimilar(ctx, []float32{1, 0}, nil, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindSimilarLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	scope := map[core.ID]bool{}
	for i := 1; i <= 5; i++ {
		docId := core.ID(i)
		scope[docId] = true
		require.NoError(t, store.ReplaceDocumentChunks(ctx, docId, []*core.Chunk{
			testChunk(docId, 0, []float32{float32(i), 1}),
		}))
	}

	matches, err := store.FindSimilar(ctx, []float32{1, 0}, scope, 2, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestClosedStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err = store.GetChunk(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	err = store.PutChunk(ctx, testChunk(1, 0, []float32{1}))
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
