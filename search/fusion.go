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

	"github.com/praxisworks/recall/core"
)

// Fuse merges strategy result lists into one deduplicated ranking.
// When a document appears in multiple lists, only its best entry
// survives: highest score, then highest similarity, then source
// priority (filename beats keyword beats semantic). The merged set is
// sorted by score descending, similarity descending. Fuse does not
// depend on the order the lists arrive in.
func Fuse(lists ...[]core.SearchResult) []core.SearchResult {
	best := map[core.ID]core.SearchResult{}
	order := []core.ID{}

	for _, list := range lists {
		for _, result := range list {
			current, seen := best[result.DocumentId]
			if !seen {
				best[result.DocumentId] = result
				order = append(order, result.DocumentId)
				continue
			}
			if betterResult(result, current) {
				best[result.DocumentId] = result
			}
		}
	}

	fused := make([]core.SearchResult, 0, len(order))
	for _, id := range order {
		fused = append(fused, best[id])
	}

	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].SearchScore != fused[j].SearchScore {
			return fused[i].SearchScore > fused[j].SearchScore
		}
		return fused[i].Similarity > fused[j].Similarity
	})
	return fused
}

// betterResult reports whether a should replace b as a document's
// surviving entry.
func betterResult(a, b core.SearchResult) bool {
	if a.SearchScore != b.SearchScore {
		return a.SearchScore > b.SearchScore
	}
	if a.Similarity != b.Similarity {
		return a.Similarity > b.Similarity
	}
	return a.SourceType.Priority() < b.SourceType.Priority()
}
