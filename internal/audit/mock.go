package audit

import "sync"

// MockRecorder is a mock implementation of the Recorder interface for testing.
// It is safe for concurrent use.
type MockRecorder struct {
	mu sync.Mutex

	// Spies for method calls
	ListFunc func() ([]Entry, error)

	// Call records
	RecordCalls []Entry
}

// NewMock creates a new mock instance.
func NewMock() *MockRecorder {
	return &MockRecorder{}
}

// Reset clears all call records.
func (m *MockRecorder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = nil
}

func (m *MockRecorder) Record(entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = append(m.RecordCalls, entry)
}

func (m *MockRecorder) List() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return append([]Entry{}, m.RecordCalls...), nil
}

// Actions returns the recorded actions in order.
func (m *MockRecorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, 0, len(m.RecordCalls))
	for _, e := range m.RecordCalls {
		actions = append(actions, e.Action)
	}
	return actions
}
