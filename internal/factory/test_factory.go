package factory

import (
	"time"

	"github.com/mcoot/wordbingo/internal/dependencies/mocks"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Storage expiry follows the mock clock.
func NewTestApp() *TestApp {
	return NewTestAppWithFeedback(nil)
}

// NewTestAppWithFeedback is NewTestApp with a custom feedback generator
func NewTestAppWithFeedback(generator feedback.Generator) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	store := memory.NewWithClock(mockClock)

	app := newWithDependencies(store, mockClock, mockRandom, Config{FeedbackGenerator: generator}, nil)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}
