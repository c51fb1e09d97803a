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
	"strings"

	"github.com/praxisworks/recall/core"
)

// FilenameScore is the fixed score for a display-name match, the
// highest tier: a user naming a document wants that document.
const FilenameScore = 100

// MatchFilenames returns every document whose display name contains the
// query, case-insensitively. Results keep corpus iteration order.
func MatchFilenames(query string, corpus []*core.Document) []core.SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []core.SearchResult{}
	}

	results := []core.SearchResult{}
	for _, doc := range corpus {
		if !strings.Contains(strings.ToLower(doc.Name), query) {
			continue
		}
		results = append(results, core.SearchResult{
			DocumentId:  doc.Id,
			SearchScore: FilenameScore,
			SourceType:  core.SourceFilename,
			Similarity:  1.0,
			Snippet:     doc.Name,
		})
	}
	return results
}
