// Package vectorize owns the write path of the embedding store: it
// splits documents into bounded chunks, embeds them, and replaces a
// document's stored chunk set atomically. Preserve mode stages the new
// provider's vectors as non-canonical alternates, leaving the prior
// canonical in charge until the migration is committed or reverted.
package vectorize
