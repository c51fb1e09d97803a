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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidWeights indicates keyword/vector weights that do not sum to ~1.
	ErrInvalidWeights = errors.New("keyword and vector weights must sum to 1")

	// ErrWeightOutOfRange indicates a weight outside [0,1].
	ErrWeightOutOfRange = errors.New("weight must be between 0 and 1")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrMissingDocument indicates a chunk without an owning document.
	ErrMissingDocument = errors.New("chunk requires an owning document")

	// ErrUnknownCanonical indicates a Canonical provider with no stored vector.
	ErrUnknownCanonical = errors.New("canonical provider has no stored vector")
)
