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


package recall

import (
	"context"
	"log/slog"
	"strings"

	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/ai/openai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/preprocess"
	"github.com/praxisworks/recall/reembed"
	"github.com/praxisworks/recall/search"
	"github.com/praxisworks/recall/storage"
	"github.com/praxisworks/recall/storage/badger"
	"github.com/praxisworks/recall/vectorize"
)

// Engine is the retrieval engine facade: query preprocessing, hybrid
// search, and the embedding store write path behind one handle. The
// document corpus and conversation history are owned by external
// systems and supplied as sources.
type Engine struct {
	backend      *badger.Backend
	chunks       storage.ChunkRepository
	documents    storage.DocumentSource
	provider     ai.AIProvider
	preprocessor *preprocess.Preprocessor
	searcher     *search.Searcher
	vectorizer   *vectorize.Vectorizer
	reverter     *reembed.Reverter
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig       *ai.Config
	provider       ai.AIProvider
	history        storage.HistorySource
	domainHint     string
	preprocessOpts []preprocess.Option
	vectorizeOpts  []vectorize.Option
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithAIProvider supplies a pre-built AI provider instead of
// constructing one from config. Used by tests to inject mocks.
func WithAIProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithHistorySource wires the conversation history collaborator so
// query rewriting can resolve vague follow-ups.
func WithHistorySource(history storage.HistorySource) EngineOption {
	return func(o *engineOptions) {
		o.history = history
	}
}

// WithDomainHint describes the knowledge base to the query classifier.
func WithDomainHint(hint string) EngineOption {
	return func(o *engineOptions) {
		o.domainHint = hint
	}
}

// WithPreprocessOptions forwards options to the query preprocessor.
func WithPreprocessOptions(opts ...preprocess.Option) EngineOption {
	return func(o *engineOptions) {
		o.preprocessOpts = append(o.preprocessOpts, opts...)
	}
}

// WithVectorizeOptions forwards options to the vectorizer.
func WithVectorizeOptions(opts ...vectorize.Option) EngineOption {
	return func(o *engineOptions) {
		o.vectorizeOpts = append(o.vectorizeOpts, opts...)
	}
}

// NewEngine opens the chunk store at filePath and wires the engine
// components. documents is the access-scoped corpus accessor owned by
// the document management system.
func NewEngine(filePath string, documents storage.DocumentSource, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}
	chunks := badger.NewChunkStore(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	preprocessOpts := []preprocess.Option{
		preprocess.WithTimeout(options.aiConfig.ClassifierTimeout),
	}
	if options.history != nil {
		preprocessOpts = append(preprocessOpts, preprocess.WithHistory(options.history))
	}
	if options.domainHint != "" {
		preprocessOpts = append(preprocessOpts, preprocess.WithDomainHint(options.domainHint))
	}
	preprocessOpts = append(preprocessOpts, options.preprocessOpts...)

	return &Engine{
		backend:      backend,
		chunks:       chunks,
		documents:    documents,
		provider:     provider,
		preprocessor: preprocess.NewPreprocessor(provider.QueryClassifier(), preprocessOpts...),
		searcher:     search.NewSearcher(documents, chunks, provider.Embedder()),
		vectorizer:   vectorize.NewVectorizer(chunks, provider.Embedder(), options.vectorizeOpts...),
		reverter:     reembed.NewReverter(documents, chunks),
		logger:       slog.Default().With("component", "engine"),
	}, nil
}

// PreprocessQuery classifies and rewrites a query. Falls back to a
// neutral plan when the reasoning model cannot be consulted.
func (e *Engine) PreprocessQuery(ctx context.Context, query, conversationId string) (core.PreprocessedQuery, error) {
	return e.preprocessor.Process(ctx, query, conversationId)
}

// Search runs the enabled strategies and returns the fused ranking.
func (e *Engine) Search(ctx context.Context, query, userId string, opts search.Options) ([]core.SearchResult, error) {
	return e.searcher.Search(ctx, query, userId, opts)
}

// Retrieve is the full pipeline: preprocess the query, and when a
// lookup is warranted, search with the enhanced query. Returns the
// preprocessing decision alongside the results so callers can surface
// the assigned weights and reasoning. A blank query yields an empty
// plan and no results, matching Search.
func (e *Engine) Retrieve(ctx context.Context, query, userId, conversationId string, opts search.Options) (core.PreprocessedQuery, []core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return core.PreprocessedQuery{OriginalQuery: query}, []core.SearchResult{}, nil
	}

	plan, err := e.preprocessor.Process(ctx, query, conversationId)
	if err != nil {
		return core.PreprocessedQuery{}, nil, err
	}
	if !plan.NeedsSearch {
		return plan, []core.SearchResult{}, nil
	}

	results, err := e.searcher.Search(ctx, plan.EnhancedQuery, userId, opts)
	if err != nil {
		return plan, nil, err
	}
	return plan, results, nil
}

// Vectorize chunks and embeds a document into the store.
func (e *Engine) Vectorize(ctx context.Context, doc *core.Document, preserve bool) error {
	return e.vectorizer.Vectorize(ctx, doc, preserve)
}

// VectorizeAll embeds the user's whole corpus on a bounded worker pool.
func (e *Engine) VectorizeAll(ctx context.Context, userId string, preserve bool, onProgress func()) (vectorize.BulkResult, error) {
	docs, err := e.documents.GetDocuments(ctx, userId)
	if err != nil {
		return vectorize.BulkResult{}, err
	}
	return e.vectorizer.VectorizeAll(ctx, docs, preserve, onProgress)
}

// RemoveDocument deletes a document's chunks from the store.
func (e *Engine) RemoveDocument(ctx context.Context, documentId core.ID) error {
	return e.vectorizer.RemoveDocument(ctx, documentId)
}

// RevertVectorization discards vectors staged by preserve-mode runs
// across every document of the user.
func (e *Engine) RevertVectorization(ctx context.Context, userId string, onProgress func()) (reembed.Result, error) {
	return e.reverter.Revert(ctx, userId, onProgress)
}

// ChunkRepository exposes the underlying chunk store.
func (e *Engine) ChunkRepository() storage.ChunkRepository {
	return e.chunks
}

// Close releases the AI provider and storage backend.
func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
