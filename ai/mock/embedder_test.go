package mock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedderDeterministic(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	a, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)
	b, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := embedder.EmbedText(ctx, "different text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMockEmbedderConcurrentCallCount(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	// bulk vectorization embeds from pool goroutines
	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := embedder.EmbedTexts(ctx, []string{"concurrent chunk"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, embedder.CallCount())
}
