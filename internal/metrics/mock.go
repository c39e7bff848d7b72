package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	resolutions         map[string]int
	matcherFailures     int
	resolutionDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		resolutions:         make(map[string]int),
		resolutionDurations: make([]float64, 0),
	}
}

func (m *Mock) IncResolution(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions[outcome]++
}

func (m *Mock) IncMatcherFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matcherFailures++
}

func (m *Mock) ObserveResolutionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutionDurations = append(m.resolutionDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Resolutions returns the number of resolutions recorded for an outcome.
func (m *Mock) Resolutions(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolutions[outcome]
}

// MatcherFailures returns the number of times IncMatcherFailure was called.
func (m *Mock) MatcherFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matcherFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
