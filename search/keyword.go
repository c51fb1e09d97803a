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
	"sort"
	"strings"

	"github.com/praxisworks/recall/core"
)

// Lexical score band: 50 + similarity*30, range 50-80. Sits between
// filename matches (100) and semantic matches (20-45).
const (
	KeywordBaseScore = 50
	KeywordScoreSpan = 30

	snippetWidth = 160
)

// SearchKeywords scores documents by normalized term overlap with the
// query, tolerating single-edit misspellings on longer tokens.
// Similarity is the fraction of query tokens found in the document's
// name or content. An empty or whitespace-only query returns no
// results; raw untokenized input is handled here.
func SearchKeywords(query string, corpus []*core.Document, limit int) []core.SearchResult {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return []core.SearchResult{}
	}

	results := []core.SearchResult{}
	for _, doc := range corpus {
		sim := overlapSimilarity(queryTokens, doc)
		if sim <= 0 {
			continue
		}
		results = append(results, core.SearchResult{
			DocumentId:  doc.Id,
			SearchScore: KeywordBaseScore + sim*KeywordScoreSpan,
			SourceType:  core.SourceKeyword,
			Similarity:  sim,
			Snippet:     snippetFor(doc.Content, queryTokens, snippetWidth),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SearchScore > results[j].SearchScore
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// overlapSimilarity returns the fraction of query tokens matched by the
// document, in [0,1]. Thai runs that weren't word-segmented still hit
// via substring containment against the raw text.
func overlapSimilarity(queryTokens []string, doc *core.Document) float64 {
	docTokens := tokenize(doc.Name + " " + doc.Content)
	docText := strings.ToLower(doc.Name + " " + doc.Content)

	matched := 0
	for _, qt := range queryTokens {
		if matchesAny(qt, docTokens) || strings.Contains(docText, qt) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}

func matchesAny(query string, candidates []string) bool {
	for _, c := range candidates {
		if tokensMatch(query, c) {
			return true
		}
	}
	return false
}
