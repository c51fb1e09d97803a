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

import (
	"fmt"
	"math"
)

// WeightTolerance is how far keyword+vector weights may drift from 1.0
// before an oracle result is rejected.
const WeightTolerance = 0.01

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - DocumentId must be set
//   - Canonical, when set, must name a provider present in Embeddings
//
// NOT validated:
//   - Embeddings (may be empty until the chunk is vectorized)
//   - Ordinal (0 is a valid first position)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.DocumentId == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrMissingDocument)
	}

	if chunk.Canonical != "" {
		if _, ok := chunk.Embeddings[chunk.Canonical]; !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidChunk, ErrUnknownCanonical, chunk.Canonical)
		}
	}

	return nil
}

// ValidateWeights checks that both weights are in [0,1] and that they sum
// to 1.0 within WeightTolerance.
func ValidateWeights(keywordWeight, vectorWeight float64) error {
	if keywordWeight < 0 || keywordWeight > 1 {
		return fmt.Errorf("%w: keyword weight %v", ErrWeightOutOfRange, keywordWeight)
	}
	if vectorWeight < 0 || vectorWeight > 1 {
		return fmt.Errorf("%w: vector weight %v", ErrWeightOutOfRange, vectorWeight)
	}
	if math.Abs(keywordWeight+vectorWeight-1.0) > WeightTolerance {
		return fmt.Errorf("%w: got %v + %v", ErrInvalidWeights, keywordWeight, vectorWeight)
	}
	return nil
}

// ClampWeight clamps a weight into [0,1].
func ClampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}
