package mock

import (
	"context"

	"github.com/praxisworks/recall/ai"
)

// MockClassifier is a test double for ai.QueryClassifier.
// It allows custom behavior injection via a function field.
type MockClassifier struct {
	// ClassifyQueryFunc is called by ClassifyQuery if set.
	// If nil, uses default behavior.
	ClassifyQueryFunc func(ctx context.Context, prompt string) (ai.Classification, error)

	callCount int
	prompts   []string
}

// NewMockClassifier creates a mock classifier with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockClassifier().
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// ClassifyQuery records the prompt and returns the injected or default decision.
// The default always requests a search with balanced weights.
func (m *MockClassifier) ClassifyQuery(ctx context.Context, prompt string) (ai.Classification, error) {
	m.callCount++
	m.prompts = append(m.prompts, prompt)

	if m.ClassifyQueryFunc != nil {
		return m.ClassifyQueryFunc(ctx, prompt)
	}

	return ai.Classification{
		NeedsSearch:   true,
		EnhancedQuery: "",
		KeywordWeight: 0.5,
		VectorWeight:  0.5,
		Reasoning:     "mock classification",
	}, nil
}

// CallCount returns the number of classification calls.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// LastPrompt returns the most recent prompt, or "" if none were recorded.
func (m *MockClassifier) LastPrompt() string {
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// Reset clears the call count, recorded prompts, and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.prompts = nil
	m.ClassifyQueryFunc = nil
}
