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


package preprocess

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

const (
	// FallbackWeight is the balanced fusion weight applied when the
	// reasoning model cannot be consulted.
	FallbackWeight = 0.5

	defaultHistoryLimit = 6
	defaultTimeout      = 10 * time.Second
)

// Preprocessor classifies and rewrites queries ahead of retrieval.
type Preprocessor struct {
	classifier     ai.QueryClassifier
	history        storage.HistorySource
	historyLimit   int
	timeout        time.Duration
	alwaysResearch bool
	domainHint     string
	logger         *slog.Logger
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithHistory wires a chat history source. Recent turns are included in
// the classification prompt so vague follow-ups can be resolved.
func WithHistory(source storage.HistorySource) Option {
	return func(p *Preprocessor) {
		p.history = source
	}
}

// WithHistoryLimit sets how many recent turns are included in the prompt.
func WithHistoryLimit(limit int) Option {
	return func(p *Preprocessor) {
		if limit > 0 {
			p.historyLimit = limit
		}
	}
}

// WithTimeout bounds a single classification call.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Preprocessor) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// WithAlwaysResearch controls whether NeedsSearch is forced on
// regardless of what the model decides. On by default: missing an
// answerable query costs more than a wasted lookup.
func WithAlwaysResearch(always bool) Option {
	return func(p *Preprocessor) {
		p.alwaysResearch = always
	}
}

// WithDomainHint adds a short description of the knowledge base to the
// classification prompt, improving entity-aware rewrites.
func WithDomainHint(hint string) Option {
	return func(p *Preprocessor) {
		p.domainHint = hint
	}
}

// NewPreprocessor creates a query preprocessor backed by the given classifier.
func NewPreprocessor(classifier ai.QueryClassifier, opts ...Option) *Preprocessor {
	p := &Preprocessor{
		classifier:     classifier,
		historyLimit:   defaultHistoryLimit,
		timeout:        defaultTimeout,
		alwaysResearch: true,
		logger:         slog.Default().With("component", "preprocessor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process classifies and rewrites a query. conversationId is optional;
// when set and a history source is wired, recent turns inform the rewrite.
//
// Process only returns an error for empty input. Classifier failures of
// any kind degrade to a neutral plan: search with the original query,
// balanced weights, NeedsSearch on.
func (p *Preprocessor) Process(ctx context.Context, query, conversationId string) (core.PreprocessedQuery, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return core.PreprocessedQuery{}, ErrEmptyQuery
	}

	prompt := p.buildPrompt(ctx, trimmed, conversationId)

	classifyCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	classification, err := p.classifier.ClassifyQuery(classifyCtx, prompt)
	if err != nil {
		p.logger.Warn("query classification failed, using fallback",
			"error", err)
		return p.fallback(trimmed, "classifier unavailable: "+err.Error()), nil
	}

	return p.accept(trimmed, classification), nil
}

// accept validates a model decision and converts it to a PreprocessedQuery.
// Invalid weights void the whole decision rather than being patched up.
func (p *Preprocessor) accept(query string, c ai.Classification) core.PreprocessedQuery {
	if err := core.ValidateWeights(c.KeywordWeight, c.VectorWeight); err != nil {
		p.logger.Warn("classifier returned invalid weights, using fallback",
			"keywordWeight", c.KeywordWeight,
			"vectorWeight", c.VectorWeight,
			"error", err)
		return p.fallback(query, fmt.Sprintf("invalid weights %.2f/%.2f", c.KeywordWeight, c.VectorWeight))
	}

	enhanced := strings.TrimSpace(c.EnhancedQuery)
	if enhanced == "" {
		enhanced = query
	}

	result := core.PreprocessedQuery{
		OriginalQuery: query,
		EnhancedQuery: enhanced,
		NeedsSearch:   c.NeedsSearch,
		KeywordWeight: c.KeywordWeight,
		VectorWeight:  c.VectorWeight,
		Reasoning:     c.Reasoning,
	}
	if p.alwaysResearch {
		result.NeedsSearch = true
	}
	return result
}

func (p *Preprocessor) fallback(query, reason string) core.PreprocessedQuery {
	return core.PreprocessedQuery{
		OriginalQuery: query,
		EnhancedQuery: query,
		NeedsSearch:   true,
		KeywordWeight: FallbackWeight,
		VectorWeight:  FallbackWeight,
		Reasoning:     "fallback: " + reason,
	}
}

// buildPrompt assembles the user prompt: optional domain hint, recent
// conversation turns, then the query itself. History fetch failures are
// logged and skipped; classification still works without context.
func (p *Preprocessor) buildPrompt(ctx context.Context, query, conversationId string) string {
	var sb strings.Builder

	if p.domainHint != "" {
		sb.WriteString("Knowledge base: ")
		sb.WriteString(p.domainHint)
		sb.WriteString("\n\n")
	}

	if p.history != nil && conversationId != "" {
		turns, err := p.history.GetRecentTurns(ctx, conversationId, p.historyLimit)
		if err != nil {
			p.logger.Warn("failed to fetch conversation history",
				"conversationId", conversationId,
				"error", err)
		} else if len(turns) > 0 {
			sb.WriteString("Recent conversation:\n")
			for _, turn := range turns {
				sb.WriteString(turn.Role)
				sb.WriteString(": ")
				sb.WriteString(turn.Content)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("Query: ")
	sb.WriteString(query)
	return sb.String()
}
