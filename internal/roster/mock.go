package roster

import (
	"sync"
)

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ClaimProfileByTokenFunc   func(token, userID string) (*Profile, error)
	LinkProfileToUserFunc     func(profileID, userID, actorID string) (bool, error)
	GetProfileFunc            func(profileID string) (*Profile, error)
	GetLinkedProfileFunc      func(userID string) (*Profile, error)
	GetPlaceholderFunc        func(userID string) (*Profile, error)
	PromotePlaceholderFunc    func(userID string, promo Promotion) (*Profile, error)
	InsertPendingProfileFunc  func(p NewProfile) (*Profile, error)
	DeletePlaceholderFunc     func(userID, keepProfileID string) error
	InsertMergeSuggestionFunc func(s MergeSuggestion) error
	GetMergeSuggestionsFunc   func() ([]MergeSuggestion, error)
	GetAllProfilesFunc        func() ([]Profile, error)
	UpsertProfilesFunc        func(profiles []Profile) error
	IssueClaimTokenFunc       func(profileID string) (string, error)

	// Call records
	ClaimProfileByTokenCalls []struct {
		Token  string
		UserID string
	}
	LinkProfileToUserCalls []struct {
		ProfileID string
		UserID    string
		ActorID   string
	}
	PromotePlaceholderCalls []struct {
		UserID string
		Promo  Promotion
	}
	InsertPendingProfileCalls []NewProfile
	DeletePlaceholderCalls    []struct {
		UserID        string
		KeepProfileID string
	}
	InsertMergeSuggestionCalls []MergeSuggestion
	IssueClaimTokenCalls       []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClaimProfileByTokenCalls = nil
	m.LinkProfileToUserCalls = nil
	m.PromotePlaceholderCalls = nil
	m.InsertPendingProfileCalls = nil
	m.DeletePlaceholderCalls = nil
	m.InsertMergeSuggestionCalls = nil
	m.IssueClaimTokenCalls = nil
}

func (m *MockStore) ClaimProfileByToken(token, userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClaimProfileByTokenCalls = append(m.ClaimProfileByTokenCalls, struct {
		Token  string
		UserID string
	}{token, userID})
	if m.ClaimProfileByTokenFunc != nil {
		return m.ClaimProfileByTokenFunc(token, userID)
	}
	return nil, nil
}

func (m *MockStore) LinkProfileToUser(profileID, userID, actorID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LinkProfileToUserCalls = append(m.LinkProfileToUserCalls, struct {
		ProfileID string
		UserID    string
		ActorID   string
	}{profileID, userID, actorID})
	if m.LinkProfileToUserFunc != nil {
		return m.LinkProfileToUserFunc(profileID, userID, actorID)
	}
	return true, nil
}

func (m *MockStore) GetProfile(profileID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(profileID)
	}
	return nil, nil
}

func (m *MockStore) GetLinkedProfile(userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLinkedProfileFunc != nil {
		return m.GetLinkedProfileFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) GetPlaceholder(userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlaceholderFunc != nil {
		return m.GetPlaceholderFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) PromotePlaceholder(userID string, promo Promotion) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromotePlaceholderCalls = append(m.PromotePlaceholderCalls, struct {
		UserID string
		Promo  Promotion
	}{userID, promo})
	if m.PromotePlaceholderFunc != nil {
		return m.PromotePlaceholderFunc(userID, promo)
	}
	return nil, nil
}

func (m *MockStore) InsertPendingProfile(p NewProfile) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertPendingProfileCalls = append(m.InsertPendingProfileCalls, p)
	if m.InsertPendingProfileFunc != nil {
		return m.InsertPendingProfileFunc(p)
	}
	return &Profile{ID: "new-profile", UserID: &p.UserID}, nil
}

func (m *MockStore) DeletePlaceholder(userID, keepProfileID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlaceholderCalls = append(m.DeletePlaceholderCalls, struct {
		UserID        string
		KeepProfileID string
	}{userID, keepProfileID})
	if m.DeletePlaceholderFunc != nil {
		return m.DeletePlaceholderFunc(userID, keepProfileID)
	}
	return nil
}

func (m *MockStore) InsertMergeSuggestion(s MergeSuggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMergeSuggestionCalls = append(m.InsertMergeSuggestionCalls, s)
	if m.InsertMergeSuggestionFunc != nil {
		return m.InsertMergeSuggestionFunc(s)
	}
	return nil
}

func (m *MockStore) GetMergeSuggestions() ([]MergeSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMergeSuggestionsFunc != nil {
		return m.GetMergeSuggestionsFunc()
	}
	return []MergeSuggestion{}, nil
}

func (m *MockStore) GetAllProfiles() ([]Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllProfilesFunc != nil {
		return m.GetAllProfilesFunc()
	}
	return []Profile{}, nil
}

func (m *MockStore) UpsertProfiles(profiles []Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertProfilesFunc != nil {
		return m.UpsertProfilesFunc(profiles)
	}
	return nil
}

func (m *MockStore) IssueClaimToken(profileID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IssueClaimTokenCalls = append(m.IssueClaimTokenCalls, profileID)
	if m.IssueClaimTokenFunc != nil {
		return m.IssueClaimTokenFunc(profileID)
	}
	return "mock-token", nil
}
