package linker

import (
	"github.com/ligadomingo/roster-link/internal/roster"
)

// Store defines the database operations required by the linker.
type Store interface {
	ClaimProfileByToken(token, userID string) (*roster.Profile, error)
	LinkProfileToUser(profileID, userID, actorID string) (bool, error)
	GetLinkedProfile(userID string) (*roster.Profile, error)
	PromotePlaceholder(userID string, promo roster.Promotion) (*roster.Profile, error)
	InsertPendingProfile(p roster.NewProfile) (*roster.Profile, error)
	DeletePlaceholder(userID, keepProfileID string) error
	InsertMergeSuggestion(s roster.MergeSuggestion) error
}
