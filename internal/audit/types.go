package audit

import (
	"database/sql"
	"sync"

	"github.com/ligadomingo/roster-link/internal/pubsub"
)

// Actions recorded per terminal resolution outcome.
const (
	ActionClaimedViaToken = "CLAIMED_VIA_TOKEN"
	ActionAutoLink        = "AUTO_LINK"
	ActionPartialPending  = "PARTIAL_PENDING"
	ActionNoMatch         = "NO_MATCH"
	ActionFallbackCreated = "FALLBACK_CREATED"
)

// Entry is one immutable audit record.
type Entry struct {
	ID              string         `json:"id"`
	Action          string         `json:"action"`
	ActorID         string         `json:"actor_id"`
	TargetProfileID string         `json:"target_profile_id,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	CreatedAt       int64          `json:"created_at"`
}

// recorder persists entries and mirrors them onto the event bus.
type recorder struct {
	db     *sql.DB
	pubsub pubsub.PubSubClient
	mu     sync.Mutex
}
