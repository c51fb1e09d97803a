package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisworks/recall/core"
)

func TestSearchKeywordsEmptyQuery(t *testing.T) {
	corpus := []*core.Document{{Id: 1, Name: "doc", Content: "content"}}

	assert.Empty(t, SearchKeywords("", corpus, 10))
	assert.Empty(t, SearchKeywords("   \t\n", corpus, 10))
	// a query of pure stopwords carries no searchable terms either
	assert.Empty(t, SearchKeywords("what is the", corpus, 10))
}

func TestSearchKeywordsScoring(t *testing.T) {
	corpus := []*core.Document{
		{Id: 1, Name: "refunds.md", Content: "Refund policy: refunds are processed within 14 days."},
		{Id: 2, Name: "shipping.md", Content: "Shipping takes 3 days for domestic orders."},
		{Id: 3, Name: "empty.md", Content: "Nothing relevant here."},
	}

	results := SearchKeywords("refund policy days", corpus, 10)
	require.NotEmpty(t, results)

	// doc 1 matches all three terms, doc 2 only one
	assert.Equal(t, core.ID(1), results[0].DocumentId)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.InDelta(t, KeywordBaseScore+KeywordScoreSpan, results[0].SearchScore, 1e-9)

	for _, r := range results {
		assert.Equal(t, core.SourceKeyword, r.SourceType)
		assert.GreaterOrEqual(t, r.SearchScore, float64(KeywordBaseScore))
		assert.LessOrEqual(t, r.SearchScore, float64(KeywordBaseScore+KeywordScoreSpan))
		assert.NotEqual(t, core.ID(3), r.DocumentId)
	}
}

func TestSearchKeywordsFuzzyMatch(t *testing.T) {
	corpus := []*core.Document{
		{Id: 1, Name: "warranty.md", Content: "Warranty claims must include a receipt."},
	}

	// one transposed letter
	results := SearchKeywords("warrenty", corpus, 10)
	require.Len(t, results, 1)
	assert.Equal(t, core.ID(1), results[0].DocumentId)
}

func TestSearchKeywordsThaiSubstring(t *testing.T) {
	corpus := []*core.Document{
		{Id: 1, Name: "store.md", Content: "OPPO เดอะมอลล์ท่าพระ ชั้น 2 เปิด 10:00"},
		{Id: 2, Name: "other.md", Content: "ข้อมูลสาขาเซ็นทรัลลาดพร้าว"},
	}

	// segmented query token hits via raw substring containment
	results := SearchKeywords("เดอะมอลล์ท่าพระ", corpus, 10)
	require.Len(t, results, 1)
	assert.Equal(t, core.ID(1), results[0].DocumentId)
}

func TestSearchKeywordsLimit(t *testing.T) {
	corpus := []*core.Document{}
	for i := 1; i <= 20; i++ {
		corpus = append(corpus, &core.Document{
			Id:      core.ID(i),
			Name:    "doc",
			Content: "shared keyword everywhere",
		})
	}

	results := SearchKeywords("keyword", corpus, 5)
	assert.Len(t, results, 5)
}

func TestWithinOneEdit(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"warranty", "warranty", true},
		{"warranty", "warrenty", true}, // one substitution
		{"warranty", "waranty", true},  // one deletion
		{"warranty", "warrantyy", true}, // one insertion
		{"warranty", "warrnaty", false},
		{"cat", "dog", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, withinOneEdit([]rune(tc.a), []rune(tc.b)), "%s vs %s", tc.a, tc.b)
	}
}
