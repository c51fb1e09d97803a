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


package reembed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

// Result summarizes a revert run. Reverted counts chunks restored to a
// single-provider state; Skipped counts chunks that held no staged
// vector to discard; Failed counts documents whose chunks could not be
// loaded or written back.
type Result struct {
	Reverted int
	Skipped  int
	Failed   int
}

// Reverter unwinds preserve-mode vectorization runs.
type Reverter struct {
	documents storage.DocumentSource
	chunks    storage.ChunkRepository
	logger    *slog.Logger
}

// NewReverter creates a reverter over the given corpus and chunk store.
func NewReverter(documents storage.DocumentSource, chunks storage.ChunkRepository) *Reverter {
	return &Reverter{
		documents: documents,
		chunks:    chunks,
		logger:    slog.Default().With("component", "reverter"),
	}
}

// Revert walks every document of the user and, chunk by chunk, drops
// the vectors staged by preserve-mode runs, leaving each chunk with its
// canonical vector only. Chunks that already hold a single vector are
// counted as skipped and left untouched. A document whose chunks cannot
// be loaded or written back is logged and counted as failed; the walk
// continues with the remaining documents. onProgress, if non-nil, is
// called once per document.
func (r *Reverter) Revert(ctx context.Context, userId string, onProgress func()) (Result, error) {
	docs, err := r.documents.GetDocuments(ctx, userId)
	if err != nil {
		return Result{}, fmt.Errorf("fetch documents: %w", err)
	}
	if len(docs) == 0 {
		return Result{}, ErrNoDocuments
	}

	result := Result{}
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		reverted, skipped, err := r.revertDocument(ctx, doc.Id)
		if err != nil {
			result.Failed++
			r.logger.Warn("revert: document failed",
				"documentId", doc.Id,
				"error", err)
		} else {
			result.Reverted += reverted
			result.Skipped += skipped
		}

		if onProgress != nil {
			onProgress()
		}
	}

	r.logger.Info("revert complete",
		"userId", userId,
		"reverted", result.Reverted,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// revertDocument reverts a single document's chunks. Nothing is written
// when no chunk held a staged vector.
func (r *Reverter) revertDocument(ctx context.Context, documentId core.ID) (reverted, skipped int, err error) {
	chunks, err := r.chunks.GetDocumentChunks(ctx, documentId)
	if err != nil {
		return 0, 0, fmt.Errorf("load chunks: %w", err)
	}

	for _, chunk := range chunks {
		if revertChunk(chunk) {
			reverted++
		} else {
			skipped++
		}
	}

	if reverted > 0 {
		err := retryWithBackoff(ctx, func() error {
			return r.chunks.ReplaceDocumentChunks(ctx, documentId, chunks)
		})
		if err != nil {
			return 0, 0, fmt.Errorf("write reverted chunks: %w", err)
		}
	}
	return reverted, skipped, nil
}

// revertChunk discards staged non-canonical vectors in place. If the
// canonical pointer dangles (no vector stored under it), the
// lexicographically smallest provider present is promoted instead so
// the chunk still comes out in a coherent single-provider state.
// Returns false when there is nothing to discard.
func revertChunk(chunk *core.Chunk) bool {
	if len(chunk.Embeddings) <= 1 {
		return false
	}

	keep := chunk.Canonical
	if _, ok := chunk.Embeddings[keep]; !ok {
		providers := make([]string, 0, len(chunk.Embeddings))
		for provider := range chunk.Embeddings {
			providers = append(providers, provider)
		}
		sort.Strings(providers)
		keep = providers[0]
	}

	chunk.Embeddings = map[string][]float32{
		keep: chunk.Embeddings[keep],
	}
	chunk.Canonical = keep
	return true
}
