// Package reembed rolls back an embedding provider migration. A
// preserve-mode vectorization run leaves each chunk holding the staged
// new vector next to the still-canonical prior one; Revert walks a
// user's corpus and discards the staged vectors.
package reembed
