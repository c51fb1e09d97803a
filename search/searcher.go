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


package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

// DefaultLimit is the per-strategy result cap when none is given.
const DefaultLimit = 10

// Options controls a single search call.
type Options struct {
	// FileName, Keyword, and Meaning toggle the individual strategies.
	FileName bool
	Keyword  bool
	Meaning  bool

	// Limit caps results per strategy and for the fused output.
	Limit int

	// MassSelectionPercentage, when in (0,100), bounds the semantic scan
	// to that share of the stored chunks.
	MassSelectionPercentage float64
}

// DefaultOptions enables all strategies with the default limit.
func DefaultOptions() Options {
	return Options{
		FileName: true,
		Keyword:  true,
		Meaning:  true,
		Limit:    DefaultLimit,
	}
}

// Searcher executes the enabled retrieval strategies concurrently and
// fuses their results.
type Searcher struct {
	documents storage.DocumentSource
	chunks    storage.ChunkRepository
	embedder  ai.Embedder
	logger    *slog.Logger
}

// NewSearcher creates a searcher over the given corpus and chunk store.
func NewSearcher(documents storage.DocumentSource, chunks storage.ChunkRepository, embedder ai.Embedder) *Searcher {
	return &Searcher{
		documents: documents,
		chunks:    chunks,
		embedder:  embedder,
		logger:    slog.Default().With("component", "searcher"),
	}
}

// Search runs the enabled strategies against the user's corpus and
// returns the fused ranking. An empty query yields no results. A
// strategy that fails contributes an empty list; Search only errors
// when the corpus itself is unreachable or every enabled strategy
// failed.
func (s *Searcher) Search(ctx context.Context, query, userId string, opts Options) ([]core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []core.SearchResult{}, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	corpus, err := s.documents.GetDocuments(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorpusUnavailable, err)
	}
	if len(corpus) == 0 {
		return []core.SearchResult{}, nil
	}

	var (
		filenameResults []core.SearchResult
		keywordResults  []core.SearchResult
		semanticResults []core.SearchResult
	)
	enabled := 0
	failures := make([]bool, 3)

	g, gctx := errgroup.WithContext(ctx)

	if opts.FileName {
		enabled++
		g.Go(func() error {
			filenameResults = MatchFilenames(query, corpus)
			return nil
		})
	}
	if opts.Keyword {
		enabled++
		g.Go(func() error {
			keywordResults = SearchKeywords(query, corpus, opts.Limit)
			return nil
		})
	}
	if opts.Meaning {
		enabled++
		g.Go(func() error {
			results, err := searchSemantic(gctx, s.embedder, s.chunks, corpus, query, opts.Limit, opts.MassSelectionPercentage)
			if err != nil {
				s.logger.Warn("semantic search degraded", "error", err)
				failures[2] = true
				return nil
			}
			semanticResults = results
			return nil
		})
	}

	if enabled == 0 {
		return []core.SearchResult{}, nil
	}
	_ = g.Wait() // strategies swallow their own errors

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	if failed == enabled {
		return nil, ErrAllStrategiesFailed
	}

	fused := Fuse(filenameResults, keywordResults, semanticResults)
	if len(fused) > opts.Limit {
		fused = fused[:opts.Limit]
	}
	return fused, nil
}
