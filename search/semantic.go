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
	"math"

	"github.com/praxisworks/recall/ai"
	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

// Semantic score band: 20 + similarity*25, range 20-45. The lowest
// tier, but still similarity-discriminated within it.
const (
	SemanticBaseScore = 20
	SemanticScoreSpan = 25
)

// searchSemantic embeds the query and ranks chunks by cosine similarity
// against their canonical vectors. Only chunks belonging to documents
// in the corpus are considered. massPct, when positive, bounds the scan
// to that percentage of the stored chunks, trading recall for latency.
func searchSemantic(
	ctx context.Context,
	embedder ai.Embedder,
	chunks storage.ChunkRepository,
	corpus []*core.Document,
	query string,
	limit int,
	massPct float64,
) ([]core.SearchResult, error) {
	if len(corpus) == 0 {
		return []core.SearchResult{}, nil
	}

	vector, err := embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scope := make(map[core.ID]bool, len(corpus))
	for _, doc := range corpus {
		scope[doc.Id] = true
	}

	maxScan := 0
	if massPct > 0 && massPct < 100 {
		total, err := chunks.CountChunks(ctx)
		if err != nil {
			return nil, fmt.Errorf("count chunks: %w", err)
		}
		maxScan = int(math.Ceil(float64(total) * massPct / 100))
		if maxScan < limit {
			maxScan = limit
		}
	}

	matches, err := chunks.FindSimilar(ctx, vector, scope, limit, maxScan)
	if err != nil {
		return nil, fmt.Errorf("similarity scan: %w", err)
	}

	results := make([]core.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, core.SearchResult{
			DocumentId:  m.Chunk.DocumentId,
			ChunkId:     m.Chunk.Id,
			SearchScore: SemanticBaseScore + m.Similarity*SemanticScoreSpan,
			SourceType:  core.SourceSemantic,
			Similarity:  m.Similarity,
			Snippet:     snippetFor(m.Chunk.Text, nil, snippetWidth),
		})
	}
	return results, nil
}
