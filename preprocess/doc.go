// Package preprocess turns a raw user query into a search-ready one.
// A reasoning model decides whether the query warrants a knowledge-base
// lookup, rewrites it for retrieval, and assigns fusion weights. When
// the model is unreachable, times out, or answers garbage, the
// preprocessor degrades to a neutral plan instead of failing: search
// proceeds with the original query and balanced weights.
package preprocess
