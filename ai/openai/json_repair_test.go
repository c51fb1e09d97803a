package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	t.Run("missing opening quote on first key", func(t *testing.T) {
		broken := `{needsSearch": true, "keywordWeight": 0.9}`
		repaired := repairJSON(broken)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(repaired), &decoded))
		assert.Equal(t, true, decoded["needsSearch"])
	})

	t.Run("missing opening quote after comma", func(t *testing.T) {
		broken := `{"needsSearch": true, reasoning": "entity query"}`
		repaired := repairJSON(broken)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(repaired), &decoded))
		assert.Equal(t, "entity query", decoded["reasoning"])
	})

	t.Run("valid json untouched", func(t *testing.T) {
		valid := `{"needsSearch": true, "enhancedQuery": "OPPO เดอะมอลล์", "keywordWeight": 0.9, "vectorWeight": 0.1}`
		assert.Equal(t, valid, repairJSON(valid))
	})

	t.Run("bare words in values untouched", func(t *testing.T) {
		valid := `{"a": true, "b": null}`
		assert.Equal(t, valid, repairJSON(valid))
	})
}
