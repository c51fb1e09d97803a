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


package vectorize

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

const (
	defaultPoolSize = 4

	// defaultEmbedRate caps bulk embedding calls per second so a
	// re-vectorization run doesn't starve interactive queries.
	defaultEmbedRate = 5
)

// Vectorizer chunks and embeds documents into the chunk store.
// Writes to the same document are serialized; different documents may
// be vectorized concurrently.
type Vectorizer struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	chunker  *Chunker
	limiter  *rate.Limiter
	poolSize int
	logger   *slog.Logger

	mu       sync.Mutex
	docLocks map[core.ID]*sync.Mutex
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithChunker overrides the default chunker.
func WithChunker(chunker *Chunker) Option {
	return func(v *Vectorizer) {
		v.chunker = chunker
	}
}

// WithPoolSize sets the worker count for bulk vectorization.
func WithPoolSize(size int) Option {
	return func(v *Vectorizer) {
		if size > 0 {
			v.poolSize = size
		}
	}
}

// WithEmbedRate caps embedding calls per second during bulk runs.
func WithEmbedRate(perSecond float64) Option {
	return func(v *Vectorizer) {
		if perSecond > 0 {
			v.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewVectorizer creates a vectorizer writing through the given repository.
func NewVectorizer(chunks storage.ChunkRepository, embedder ai.Embedder, opts ...Option) *Vectorizer {
	v := &Vectorizer{
		chunks:   chunks,
		embedder: embedder,
		chunker:  NewChunker(),
		limiter:  rate.NewLimiter(rate.Limit(defaultEmbedRate), 1),
		poolSize: defaultPoolSize,
		logger:   slog.Default().With("component", "vectorizer"),
		docLocks: map[core.ID]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Vectorize chunks and embeds a document, atomically replacing its
// stored chunk set. Running it twice on unchanged content is a no-op at
// the data level: chunk IDs are deterministic and vectors identical.
//
// With preserve set, each chunk keeps the embeddings it already had in
// the store (matched by ordinal), and when the prior canonical vector
// came from a different provider it stays canonical: the fresh vector
// is staged as a non-canonical alternate. A later plain Vectorize
// commits the migration; Revert discards the staged vectors.
func (v *Vectorizer) Vectorize(ctx context.Context, doc *core.Document, preserve bool) error {
	unlock := v.lockDocument(doc.Id)
	defer unlock()

	texts := v.chunker.Split(doc.Content)
	if len(texts) == 0 {
		return fmt.Errorf("%w: document %d", ErrEmptyDocument, doc.Id)
	}

	var prior []*core.Chunk
	if preserve {
		existing, err := v.chunks.GetDocumentChunks(ctx, doc.Id)
		if err != nil {
			return fmt.Errorf("load prior chunks: %w", err)
		}
		prior = existing
	}

	vectors, err := v.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("%w: %d vectors for %d chunks", ErrEmbeddingMismatch, len(vectors), len(texts))
	}

	provider := v.embedder.ProviderId()
	priorByOrdinal := map[int]*core.Chunk{}
	for _, chunk := range prior {
		priorByOrdinal[chunk.Ordinal] = chunk
	}

	chunks := make([]*core.Chunk, 0, len(texts))
	for i, text := range texts {
		embeddings := map[string][]float32{}
		canonical := provider
		if old, ok := priorByOrdinal[i]; ok {
			for key, vec := range old.Embeddings {
				embeddings[key] = vec
			}
			if old.Canonical != "" && old.Canonical != provider {
				canonical = old.Canonical
			}
		}
		embeddings[provider] = vectors[i]

		chunk := &core.Chunk{
			Id:         core.ChunkIdFor(doc.Id, i),
			DocumentId: doc.Id,
			Ordinal:    i,
			Text:       text,
			Embeddings: embeddings,
			Canonical:  canonical,
		}
		if err := core.ValidateChunk(chunk); err != nil {
			return err
		}
		chunks = append(chunks, chunk)
	}

	if err := v.chunks.ReplaceDocumentChunks(ctx, doc.Id, chunks); err != nil {
		return fmt.Errorf("replace chunks: %w", err)
	}

	v.logger.Info("document vectorized",
		"documentId", doc.Id,
		"chunks", len(chunks),
		"provider", provider,
		"preserve", preserve)
	return nil
}

// BulkResult summarizes a bulk vectorization run.
type BulkResult struct {
	Processed int
	Failed    int
}

// VectorizeAll vectorizes a set of documents on a bounded worker pool,
// throttled by the embed rate limiter. Individual document failures are
// logged and counted, not propagated; the run continues. onProgress, if
// non-nil, is called once per finished document.
func (v *Vectorizer) VectorizeAll(ctx context.Context, docs []*core.Document, preserve bool, onProgress func()) (BulkResult, error) {
	pool, err := ants.NewPool(v.poolSize)
	if err != nil {
		return BulkResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	result := BulkResult{}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := v.limiter.Wait(ctx); err != nil {
			break
		}

		doc := doc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			err := v.Vectorize(ctx, doc, preserve)

			mu.Lock()
			if err != nil {
				result.Failed++
				v.logger.Warn("bulk vectorization: document failed",
					"documentId", doc.Id,
					"error", err)
			} else {
				result.Processed++
			}
			mu.Unlock()

			if onProgress != nil {
				onProgress()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			result.Failed++
			mu.Unlock()
		}
	}

	wg.Wait()
	return result, ctx.Err()
}

// RemoveDocument deletes every stored chunk of a document. Removing a
// document that was never vectorized is not an error.
func (v *Vectorizer) RemoveDocument(ctx context.Context, documentId core.ID) error {
	unlock := v.lockDocument(documentId)
	defer unlock()

	if err := v.chunks.DeleteDocumentChunks(ctx, documentId); err != nil {
		return fmt.Errorf("delete chunks: %w", err)
	}
	v.logger.Info("document removed", "documentId", documentId)
	return nil
}

// lockDocument serializes writes per document. The lock map only grows;
// document counts are small enough that reclaiming entries isn't worth
// the bookkeeping.
func (v *Vectorizer) lockDocument(id core.ID) func() {
	v.mu.Lock()
	lock, ok := v.docLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		v.docLocks[id] = lock
	}
	v.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
