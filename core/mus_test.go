package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	for _, id := range []ID{0, 1, 42, 1 << 40, ^ID(0)} {
		buf := make([]byte, IDMUS.Size(id))
		n := IDMUS.Marshal(id, buf)
		assert.Equal(t, len(buf), n)

		decoded, n, err := IDMUS.Unmarshal(buf)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, id, decoded)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	chunk := Chunk{
		Id:         ChunkIdFor(7, 3),
		DocumentId: 7,
		Ordinal:    3,
		Text:       "ทดสอบ mixed script chunk text",
		Embeddings: map[string][]float32{
			"embeddinggemma": {0.25, -0.5, 0.125},
			"nomic":          {1.0, 0.0},
		},
		Canonical:  "embeddinggemma",
		InsertedAt: now,
		UpdatedAt:  now.Add(time.Minute),
	}

	buf := make([]byte, ChunkMUS.Size(chunk))
	n := ChunkMUS.Marshal(chunk, buf)
	assert.Equal(t, len(buf), n)

	decoded, n, err := ChunkMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	assert.Equal(t, chunk.Id, decoded.Id)
	assert.Equal(t, chunk.DocumentId, decoded.DocumentId)
	assert.Equal(t, chunk.Ordinal, decoded.Ordinal)
	assert.Equal(t, chunk.Text, decoded.Text)
	assert.Equal(t, chunk.Embeddings, decoded.Embeddings)
	assert.Equal(t, chunk.Canonical, decoded.Canonical)
	assert.True(t, chunk.InsertedAt.Equal(decoded.InsertedAt))
	assert.True(t, chunk.UpdatedAt.Equal(decoded.UpdatedAt))
}

func TestChunkMarshalDeterministic(t *testing.T) {
	chunk := Chunk{
		Id:         1,
		DocumentId: 2,
		Text:       "text",
		Embeddings: map[string][]float32{
			"b": {0.2},
			"a": {0.1},
			"c": {0.3},
		},
		Canonical: "a",
	}

	first := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, first)
	// Map iteration order varies between runs; serialization must not.
	for i := 0; i < 10; i++ {
		buf := make([]byte, ChunkMUS.Size(chunk))
		ChunkMUS.Marshal(chunk, buf)
		assert.Equal(t, first, buf)
	}
}

func TestChunkUnmarshalTruncated(t *testing.T) {
	chunk := Chunk{Id: 1, DocumentId: 2, Text: "text"}
	buf := make([]byte, ChunkMUS.Size(chunk))
	ChunkMUS.Marshal(chunk, buf)

	_, _, err := ChunkMUS.Unmarshal(buf[:len(buf)-2])
	assert.Error(t, err)
}
