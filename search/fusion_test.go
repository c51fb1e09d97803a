package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisworks/recall/core"
)

func TestFuseDeduplicates(t *testing.T) {
	filename := []core.SearchResult{
		{DocumentId: 1, SearchScore: 100, SourceType: core.SourceFilename, Similarity: 1.0},
	}
	keyword := []core.SearchResult{
		{DocumentId: 1, SearchScore: 75, SourceType: core.SourceKeyword, Similarity: 0.83},
		{DocumentId: 2, SearchScore: 65, SourceType: core.SourceKeyword, Similarity: 0.5},
	}
	semantic := []core.SearchResult{
		{DocumentId: 1, SearchScore: 42, SourceType: core.SourceSemantic, Similarity: 0.88},
		{DocumentId: 3, SearchScore: 30, SourceType: core.SourceSemantic, Similarity: 0.4},
	}

	fused := Fuse(filename, keyword, semantic)
	require.Len(t, fused, 3)

	seen := map[core.ID]bool{}
	for _, r := range fused {
		assert.False(t, seen[r.DocumentId], "documentId %d appears twice", r.DocumentId)
		seen[r.DocumentId] = true
	}

	// doc 1 keeps its highest-scoring entry
	assert.Equal(t, core.ID(1), fused[0].DocumentId)
	assert.Equal(t, float64(100), fused[0].SearchScore)
	assert.Equal(t, core.SourceFilename, fused[0].SourceType)
}

func TestFuseSortsByScoreThenSimilarity(t *testing.T) {
	fused := Fuse([]core.SearchResult{
		{DocumentId: 1, SearchScore: 60, Similarity: 0.2, SourceType: core.SourceKeyword},
		{DocumentId: 2, SearchScore: 60, Similarity: 0.9, SourceType: core.SourceKeyword},
		{DocumentId: 3, SearchScore: 80, Similarity: 0.1, SourceType: core.SourceKeyword},
	})

	require.Len(t, fused, 3)
	assert.Equal(t, core.ID(3), fused[0].DocumentId)
	assert.Equal(t, core.ID(2), fused[1].DocumentId)
	assert.Equal(t, core.ID(1), fused[2].DocumentId)
}

func TestFuseTieBreaks(t *testing.T) {
	t.Run("higher similarity wins at equal score", func(t *testing.T) {
		fused := Fuse(
			[]core.SearchResult{{DocumentId: 1, SearchScore: 50, Similarity: 0.3, SourceType: core.SourceSemantic}},
			[]core.SearchResult{{DocumentId: 1, SearchScore: 50, Similarity: 0.7, SourceType: core.SourceKeyword}},
		)
		require.Len(t, fused, 1)
		assert.Equal(t, 0.7, fused[0].Similarity)
	})

	t.Run("source priority wins at equal score and similarity", func(t *testing.T) {
		fused := Fuse(
			[]core.SearchResult{{DocumentId: 1, SearchScore: 50, Similarity: 0.5, SourceType: core.SourceSemantic}},
			[]core.SearchResult{{DocumentId: 1, SearchScore: 50, Similarity: 0.5, SourceType: core.SourceKeyword}},
		)
		require.Len(t, fused, 1)
		assert.Equal(t, core.SourceKeyword, fused[0].SourceType)
	})
}

func TestFuseOrderIndependent(t *testing.T) {
	a := []core.SearchResult{{DocumentId: 1, SearchScore: 100, SourceType: core.SourceFilename, Similarity: 1}}
	b := []core.SearchResult{{DocumentId: 1, SearchScore: 70, SourceType: core.SourceKeyword, Similarity: 0.6}}
	c := []core.SearchResult{{DocumentId: 2, SearchScore: 35, SourceType: core.SourceSemantic, Similarity: 0.6}}

	first := Fuse(a, b, c)
	second := Fuse(c, b, a)
	third := Fuse(b, c, a)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestFuseEmptyLists(t *testing.T) {
	assert.Empty(t, Fuse(nil, nil, nil))
	assert.Empty(t, Fuse())

	one := []core.SearchResult{{DocumentId: 1, SearchScore: 100, SourceType: core.SourceFilename}}
	fused := Fuse(one, nil, []core.SearchResult{})
	assert.Len(t, fused, 1)
}
