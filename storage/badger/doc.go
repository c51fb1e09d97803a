// Package badger provides a BadgerDB-backed implementation of the
// storage interfaces. Chunks are stored under content-derived keys with
// a per-document ordinal index so a document's chunks can be replaced
// atomically and read back in order.
package badger
