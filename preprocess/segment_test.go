package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentScriptRuns(t *testing.T) {
	t.Run("latin and digits", func(t *testing.T) {
		assert.Equal(t, []string{"OPPO", "A5", "Pro"}, Segment("OPPO A5 Pro"))
	})

	t.Run("thai run stays together", func(t *testing.T) {
		assert.Equal(t, []string{"เดอะมอลล์ท่าพระ"}, Segment("เดอะมอลล์ท่าพระ"))
	})

	t.Run("mixed script splits at boundaries", func(t *testing.T) {
		assert.Equal(t, []string{"เบอร์โทร", "OPPO", "เดอะมอลล์"}, Segment("เบอร์โทรOPPOเดอะมอลล์"))
	})

	t.Run("punctuation separates", func(t *testing.T) {
		assert.Equal(t, []string{"policy", "pdf"}, Segment("policy.pdf"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Segment("  "))
	})
}

func TestTokenize(t *testing.T) {
	t.Run("lowercases and drops stopwords", func(t *testing.T) {
		tokens := Tokenize("What is the Policy for refunds")
		assert.Equal(t, []string{"policy", "refunds"}, tokens)
	})

	t.Run("thai particles dropped", func(t *testing.T) {
		tokens := Tokenize("ขอเบอร์โทรหน่อยครับ")
		// the remaining Thai run survives as one token
		assert.NotContains(t, tokens, "ครับ")
		assert.NotContains(t, tokens, "หน่อย")
	})

	t.Run("digits kept", func(t *testing.T) {
		tokens := Tokenize("room 5")
		assert.Equal(t, []string{"room", "5"}, tokens)
	})
}
