package matcher

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the MatcherClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	FindMatchingProfilesFunc func(ctx context.Context, params *SearchParams) ([]Candidate, error)

	// Call records
	FindMatchingProfilesCalls []*SearchParams
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindMatchingProfilesCalls = nil
}

func (m *MockClient) FindMatchingProfiles(ctx context.Context, params *SearchParams) ([]Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindMatchingProfilesCalls = append(m.FindMatchingProfilesCalls, params)
	if m.FindMatchingProfilesFunc != nil {
		return m.FindMatchingProfilesFunc(ctx, params)
	}
	return []Candidate{}, nil
}
