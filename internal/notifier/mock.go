package notifier

import (
	"sync"

	"github.com/ligadomingo/roster-link/internal/roster"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendMergeSuggestionNoticeFunc func(suggestion roster.MergeSuggestion, profileName, registrantEmail string, dryRun bool) error

	// Call records
	SendMergeSuggestionNoticeCalls []struct {
		Suggestion      roster.MergeSuggestion
		ProfileName     string
		RegistrantEmail string
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMergeSuggestionNoticeCalls = nil
}

func (m *Mock) SendMergeSuggestionNotice(suggestion roster.MergeSuggestion, profileName, registrantEmail string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMergeSuggestionNoticeCalls = append(m.SendMergeSuggestionNoticeCalls, struct {
		Suggestion      roster.MergeSuggestion
		ProfileName     string
		RegistrantEmail string
	}{suggestion, profileName, registrantEmail})
	if m.SendMergeSuggestionNoticeFunc != nil {
		return m.SendMergeSuggestionNoticeFunc(suggestion, profileName, registrantEmail, dryRun)
	}
	return nil
}
