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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

// ChunkStore implements storage.ChunkRepository on top of BadgerDB.
type ChunkStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ChunkRepository = (*ChunkStore)(nil)

// NewChunkStore creates a chunk repository backed by the given backend.
func NewChunkStore(backend *Backend) *ChunkStore {
	return &ChunkStore{
		backend: backend,
		logger:  slog.Default().With("component", "chunkstore"),
	}
}

// Open opens a chunk repository at the given path.
func Open(filePath string) (*ChunkStore, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return NewChunkStore(backend), nil
}

// ReplaceDocumentChunks atomically replaces every chunk of a document.
// Old chunks and index entries are deleted and the new set written in a
// single transaction, so readers see either the prior set or the new one.
func (s *ChunkStore) ReplaceDocumentChunks(ctx context.Context, documentId core.ID, chunks []*core.Chunk) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteDocumentChunksTx(tx, documentId); err != nil {
			return err
		}
		for _, chunk := range chunks {
			if chunk.DocumentId != documentId {
				return fmt.Errorf("%w: chunk %d belongs to document %d", storage.ErrInvalidQuery, chunk.Id, chunk.DocumentId)
			}
			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = now
			}
			chunk.UpdatedAt = now
			if err := tx.Set(chunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			if err := tx.Set(docIndexKey(documentId, chunk.Ordinal), chunkIdValue(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

// GetDocumentChunks retrieves all chunks of a document, ordered by ordinal.
func (s *ChunkStore) GetDocumentChunks(ctx context.Context, documentId core.ID) ([]*core.Chunk, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := []*core.Chunk{}
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = docIndexPrefix(documentId)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var chunkId core.ID
			err := it.Item().Value(func(val []byte) error {
				chunkId = chunkIdFromValue(val)
				return nil
			})
			if err != nil {
				return err
			}
			chunk, err := getChunkTx(tx, chunkId)
			if err != nil {
				return err
			}
			chunks = append(chunks, chunk)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// DeleteDocumentChunks removes all chunks of a document.
func (s *ChunkStore) DeleteDocumentChunks(ctx context.Context, documentId core.ID) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteDocumentChunksTx(tx, documentId); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

// GetChunk retrieves a single chunk by ID.
func (s *ChunkStore) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var chunk *core.Chunk
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		chunk, err = getChunkTx(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// PutChunk writes a single chunk, overwriting any existing entry.
func (s *ChunkStore) PutChunk(ctx context.Context, chunk *core.Chunk) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	chunk.UpdatedAt = time.Now()
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(chunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
			return err
		}
		if err := tx.Set(docIndexKey(chunk.DocumentId, chunk.Ordinal), chunkIdValue(chunk.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}
	return nil
}

// CountChunks returns the number of stored chunks.
func (s *ChunkStore) CountChunks(ctx context.Context) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkKeyPrefix
		opts.PrefetchValues = false
		it := tx.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindSimilar scans canonical chunk vectors and returns the chunks most
// similar to the query vector, ordered by similarity (highest first).
func (s *ChunkStore) FindSimilar(ctx context.Context, vector []float32, scope map[core.ID]bool, limit, maxScan int) ([]*core.ChunkMatch, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(vector) == 0 || limit <= 0 {
		return []*core.ChunkMatch{}, nil
	}

	matches := []*core.ChunkMatch{}
	scanned := 0
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = chunkKeyPrefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if maxScan > 0 && scanned >= maxScan {
				break
			}
			var chunk *core.Chunk
			err := it.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			})
			if err != nil {
				return err
			}
			if !scope[chunk.DocumentId] {
				continue
			}
			scanned++
			canonical := chunk.CanonicalVector()
			if len(canonical) != len(vector) {
				continue
			}
			matches = append(matches, &core.ChunkMatch{
				Chunk:      chunk,
				Similarity: cosineSimilarity(vector, canonical),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Close closes the underlying backend.
func (s *ChunkStore) Close() error {
	return s.backend.Close()
}

func getChunkTx(tx *badger.Txn, id core.ID) (*core.Chunk, error) {
	item, err := tx.Get(chunkKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: chunk %d", storage.ErrNotFound, id)
		}
		return nil, err
	}
	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

func deleteDocumentChunksTx(tx *badger.Txn, documentId core.ID) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = docIndexPrefix(documentId)
	it := tx.NewIterator(opts)
	defer it.Close()

	indexKeys := [][]byte{}
	chunkIds := []core.ID{}
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		indexKeys = append(indexKeys, item.KeyCopy(nil))
		err := item.Value(func(val []byte) error {
			chunkIds = append(chunkIds, chunkIdFromValue(val))
			return nil
		})
		if err != nil {
			return err
		}
	}
	it.Close()

	for _, id := range chunkIds {
		if err := tx.Delete(chunkKey(id)); err != nil {
			return err
		}
	}
	for _, key := range indexKeys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
