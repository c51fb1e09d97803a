package vectorize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortText(t *testing.T) {
	chunker := NewChunker()

	chunks := chunker.Split("a short document")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestSplitBlankText(t *testing.T) {
	chunker := NewChunker()
	assert.Nil(t, chunker.Split(""))
	assert.Nil(t, chunker.Split("   \n\n  "))
}

func TestSplitRespectsParagraphs(t *testing.T) {
	chunker := &Chunker{ChunkSize: 50, Overlap: 10}

	text := strings.Join([]string{
		"First paragraph with some words in it.",
		"Second paragraph, also short.",
		"Third paragraph closes the document.",
	}, "\n\n")

	chunks := chunker.Split(text)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.NotEmpty(t, chunk)
	}
	assert.Contains(t, chunks[0], "First paragraph")
}

func TestSplitBoundsChunkSize(t *testing.T) {
	chunker := &Chunker{ChunkSize: 100, Overlap: 20}

	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("This sentence repeats to build a long paragraph. ")
	}

	chunks := chunker.Split(sb.String())
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		// overlap may push a chunk slightly past the target
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), chunker.ChunkSize+chunker.Overlap+1)
	}
}

func TestSplitHardWrapsUnbrokenText(t *testing.T) {
	chunker := &Chunker{ChunkSize: 40, Overlap: 0}

	// Thai-style text with no spaces or sentence punctuation
	text := strings.Repeat("ข้อมูลสาขาและเวลาเปิดปิดของร้านค้า", 10)
	chunks := chunker.Split(text)

	require.Greater(t, len(chunks), 1)
	var total int
	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), chunker.ChunkSize)
		total += utf8.RuneCountInString(chunk)
	}
	assert.GreaterOrEqual(t, total, utf8.RuneCountInString(text))
}

func TestSplitDeterministic(t *testing.T) {
	chunker := NewChunker()
	text := strings.Repeat("Deterministic chunking matters for stable chunk IDs. ", 100)

	first := chunker.Split(text)
	second := chunker.Split(text)
	assert.Equal(t, first, second)
}
