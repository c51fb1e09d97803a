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


// Package storage provides the storage abstraction layer for recall.
//
// This package defines the chunk repository interface that decouples the
// embedding store implementation from business logic, plus the collaborator
// interfaces (document corpus, chat history) the engine consumes but does
// not own.
//
// Public constructors in backend packages return interface types to enforce
// abstraction and enable alternative storage backends:
//
//	repo, err := badger.NewChunkRepository(backend)  // returns storage.ChunkRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. Reads observe the last committed revision
// of a document's chunks and never block on in-flight writes.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
