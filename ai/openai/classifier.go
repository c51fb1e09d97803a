// Copyright 2025 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/praxisworks/recall/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// QueryClassifier implements ai.QueryClassifier using OpenAI-compatible chat APIs.
type QueryClassifier struct {
	client llms.Model
	logger *slog.Logger
}

// classification is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type classification struct {
	NeedsSearch   bool    `json:"needsSearch"`
	EnhancedQuery string  `json:"enhancedQuery"`
	KeywordWeight float64 `json:"keywordWeight"`
	VectorWeight  float64 `json:"vectorWeight"`
	Reasoning     string  `json:"reasoning"`
}

// newQueryClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newQueryClassifier(config *ai.Config) (*QueryClassifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken("none"),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return &QueryClassifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewQueryClassifier creates a new query classifier using the provided configuration.
//
// Returns ai.QueryClassifier interface to enforce abstraction.
func NewQueryClassifier(config *ai.Config) (ai.QueryClassifier, error) {
	return newQueryClassifier(config)
}

// ClassifyQuery sends the classification prompt to the LLM and parses its decision.
// The caller assembles the prompt (query, history, domain hint); this method
// owns only transport and parsing.
func (c *QueryClassifier) ClassifyQuery(ctx context.Context, prompt string) (ai.Classification, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(classificationSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result classification
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Classification{}, err
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return ai.Classification{}, ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return ai.Classification{}, lastErr
	}

	return ai.Classification{
		NeedsSearch:   result.NeedsSearch,
		EnhancedQuery: strings.TrimSpace(result.EnhancedQuery),
		KeywordWeight: result.KeywordWeight,
		VectorWeight:  result.VectorWeight,
		Reasoning:     result.Reasoning,
	}, nil
}
