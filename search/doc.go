// Package search runs the retrieval strategies and fuses their results.
//
// Three independent strategies score documents in deliberately distinct
// bands: filename matches at 100, lexical matches at 50-80, semantic
// matches at 20-45. The bands encode ranking intent: an exact name hit
// always wins, lexical relevance normally outranks fuzzy semantic
// affinity. Strategies run concurrently and degrade independently; a
// failing strategy contributes an empty list instead of failing the
// search.
package search
