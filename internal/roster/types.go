package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ErrDuplicate is returned when an insert collides with an existing profile
// for the same identity. It is produced at the store so callers never have
// to inspect driver error text.
var ErrDuplicate = errors.New("profile already exists for this identity")

// Profile statuses. The league product is Portuguese-language; the status
// values are part of the store contract.
const (
	StatusPendente = "pendente"
	StatusAtivo    = "ativo"
)

// Profile is a row in the profiles table. A placeholder created by the
// signup trigger has IsPlayer=false; a real player record (admin-imported
// or promoted) has IsPlayer=true.
type Profile struct {
	ID             string  `json:"id"`
	PlayerID       *string `json:"player_id"`
	Name           string  `json:"name"`
	Nickname       *string `json:"nickname"`
	Email          string  `json:"email"`
	BirthDate      *string `json:"birth_date"`
	Position       *string `json:"position"`
	UserID         *string `json:"user_id"`
	Status         string  `json:"status"`
	ClaimToken     *string `json:"-"`
	IsPlayer       bool    `json:"is_player"`
	IsApproved     bool    `json:"is_approved"`
	CreatedByAdmin bool    `json:"created_by_admin"`
	CreatedAt      int64   `json:"created_at"`
}

// Promotion carries the fields written onto a placeholder when it is
// promoted into a pending player profile.
type Promotion struct {
	PlayerID string
	Name     string
	Position string
}

// NewProfile carries the raw registration attributes used when no
// placeholder exists and a pending profile has to be built from scratch.
type NewProfile struct {
	UserID    string
	PlayerID  string
	Name      string
	Email     string
	BirthDate string
	Position  string
}

// MergeSuggestion is a medium-confidence candidate queued for admin review.
type MergeSuggestion struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	UserID    string `json:"user_id"`
	Score     int    `json:"score"`
	Reason    string `json:"reason"`
	CreatedAt int64  `json:"created_at"`
}
