package roster

// RosterStore defines the interface for interacting with the league's profile data.
type RosterStore interface {
	// ClaimProfileByToken atomically links the profile whose claim token
	// matches and is still unclaimed, invalidating the token in the same
	// update. It returns (nil, nil) when no such profile exists, which
	// callers treat as a silent fall-through, not an error.
	ClaimProfileByToken(token, userID string) (*Profile, error)
	// LinkProfileToUser sets user_id on the target profile only if it is
	// currently null. It returns false when another caller won the race.
	// actorID identifies who initiated the rebind (the registrant during
	// self-registration, an admin during manual merges).
	LinkProfileToUser(profileID, userID, actorID string) (bool, error)
	GetProfile(profileID string) (*Profile, error)
	// GetLinkedProfile returns the player profile already holding this
	// user_id, or nil when the identity is still unresolved.
	GetLinkedProfile(userID string) (*Profile, error)
	GetPlaceholder(userID string) (*Profile, error)
	// PromotePlaceholder mutates the signup placeholder in place into a
	// pending player profile. It returns (nil, nil) when no placeholder
	// exists for the identity.
	PromotePlaceholder(userID string, promo Promotion) (*Profile, error)
	InsertPendingProfile(p NewProfile) (*Profile, error)
	// DeletePlaceholder removes the placeholder row for the identity,
	// skipping keepProfileID. It tolerates the row already being absent.
	DeletePlaceholder(userID, keepProfileID string) error
	InsertMergeSuggestion(s MergeSuggestion) error
	GetMergeSuggestions() ([]MergeSuggestion, error)
	GetAllProfiles() ([]Profile, error)
	UpsertProfiles(profiles []Profile) error
	// IssueClaimToken rotates the claim token on an unlinked profile.
	IssueClaimToken(profileID string) (string, error)
}
