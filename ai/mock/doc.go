// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.QueryClassifier,
// and ai.AIProvider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockClassifier := mock.NewMockClassifier()
//	mockClassifier.ClassifyQueryFunc = func(ctx context.Context, prompt string) (ai.Classification, error) {
//	    return ai.Classification{NeedsSearch: true, KeywordWeight: 0.9, VectorWeight: 0.1}, nil
//	}
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockClassifier: Always requests a search with balanced weights
//   - MockProvider: Aggregates mock embedder and classifier
package mock
