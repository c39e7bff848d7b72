package linker

import "fmt"

// Outcome is the terminal state of one resolution pass. Every invocation
// ends in exactly one of these.
type Outcome string

const (
	OutcomeClaimedViaToken Outcome = "CLAIMED_VIA_TOKEN"
	OutcomeAutoLink        Outcome = "AUTO_LINK"
	OutcomePartialPending  Outcome = "PARTIAL_PENDING"
	OutcomeNoMatch         Outcome = "NO_MATCH"
	OutcomeFallbackCreated Outcome = "FALLBACK_CREATED"
)

// Confidence thresholds for the decision policy. A wrong auto-merge corrupts
// a player's history while a pending review is always recoverable, hence the
// high bar for linking without review.
const (
	AutoLinkThreshold = 90
	ReviewThreshold   = 60
)

// ResolveRequest carries the registrant's identity attributes.
type ResolveRequest struct {
	AuthUserID string `json:"auth_user_id"`
	Email      string `json:"email"`
	BirthDate  string `json:"birth_date,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Position   string `json:"position,omitempty"`
	ClaimToken string `json:"claim_token,omitempty"`

	// DryRun suppresses outbound admin notifications; the resolution itself
	// still runs against the store.
	DryRun bool `json:"-"`
}

// PartialMatch is the medium-confidence candidate surfaced to the registrant
// and queued for admin review.
type PartialMatch struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
}

// Result is the outcome of a resolution, consumed by the response composer.
type Result struct {
	Outcome         Outcome
	Linked          bool
	Created         bool
	ProfileID       string
	PlayerID        string
	MatchScore      int
	Partial         *PartialMatch
	ClaimedViaToken bool
	Message         string
}

// Kind classifies a resolution failure. Kinds are produced where the failure
// happens and mapped to HTTP exactly once, in the response composer.
type Kind int

const (
	KindValidation Kind = iota
	KindMatcherUnavailable
	KindLinkConflict
	KindPersistence
	KindDuplicate
)

// User-facing messages are a small fixed set; raw store error text is logged
// server-side only and never returned.
const (
	MsgMissingFields         = "auth_user_id and email are required"
	MsgRegistrationFailed    = "registration failed, please try again"
	MsgDuplicateRegistration = "registration already exists"

	MsgClaimedViaToken = "Profile linked via claim token."
	MsgAutoLinked      = "Profile linked to existing player record."
	MsgPartialPending  = "Registration received; a possible existing profile is awaiting admin review."
	MsgNoMatch         = "Registration received; new player profile created pending approval."
	MsgAlreadyResolved = "Registration already processed."
)

// Error is a classified resolution failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to the external status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return 400
	case KindDuplicate:
		return 409
	default:
		return 500
	}
}
