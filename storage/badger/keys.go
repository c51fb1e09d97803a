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
	"encoding/binary"

	"github.com/praxisworks/recall/core"
)

// Key layout:
//
//	c:<chunkId>              -> serialized chunk
//	d:<docId><ordinal>       -> chunkId
//
// Chunk IDs and document IDs are big-endian uint64, ordinals big-endian
// uint32, so iterating a document's index prefix yields chunks in
// ordinal order.
var (
	chunkKeyPrefix    = []byte("c:")
	docIndexKeyPrefix = []byte("d:")
)

func chunkKey(id core.ID) []byte {
	key := make([]byte, len(chunkKeyPrefix)+8)
	copy(key, chunkKeyPrefix)
	binary.BigEndian.PutUint64(key[len(chunkKeyPrefix):], uint64(id))
	return key
}

func docIndexPrefix(documentId core.ID) []byte {
	prefix := make([]byte, len(docIndexKeyPrefix)+8)
	copy(prefix, docIndexKeyPrefix)
	binary.BigEndian.PutUint64(prefix[len(docIndexKeyPrefix):], uint64(documentId))
	return prefix
}

func docIndexKey(documentId core.ID, ordinal int) []byte {
	prefix := docIndexPrefix(documentId)
	key := make([]byte, len(prefix)+4)
	copy(key, prefix)
	binary.BigEndian.PutUint32(key[len(prefix):], uint32(ordinal))
	return key
}

func chunkIdFromValue(val []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(val))
}

func chunkIdValue(id core.ID) []byte {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, uint64(id))
	return val
}
