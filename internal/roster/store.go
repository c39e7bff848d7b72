package roster

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

const profileColumns = `id, player_id, name, nickname, email, birth_date, position, user_id, status, claim_token, is_player, is_approved, created_by_admin, created_at`

// isUniqueViolation detects a unique-constraint failure at the driver
// boundary. The libsql and sqlite3 drivers surface different error types,
// so the message is the only common denominator; the check lives here and
// nowhere else, callers only ever see ErrDuplicate.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ClaimProfileByToken performs the single-use token claim: one conditional
// update that binds the user and burns the token atomically. Exactly one of
// two racing callers can ever see a row affected.
func (s *store) ClaimProfileByToken(token, userID string) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE profiles
		SET user_id = ?, claim_token = NULL
		WHERE claim_token = ? AND user_id IS NULL
	`, userID, token)
	if err != nil {
		return nil, fmt.Errorf("failed to claim profile by token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read claim result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.getProfileWhere("user_id = ? AND is_player = 1", userID)
}

// LinkProfileToUser rebinds the identity onto the target profile, but only
// if no one holds it yet. Returns false when the conditional update matched
// no rows, which means another caller won the race.
func (s *store) LinkProfileToUser(profileID, userID, actorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE profiles
		SET user_id = ?, claim_token = NULL
		WHERE id = ? AND user_id IS NULL
	`, userID, profileID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicate
		}
		return false, fmt.Errorf("failed to link profile %s: %w", profileID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read link result: %w", err)
	}
	if affected == 1 {
		log.Info("Linked profile to user", "profileID", profileID, "userID", userID, "actorID", actorID)
	}
	return affected == 1, nil
}

func (s *store) GetProfile(profileID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileWhere("id = ?", profileID)
}

func (s *store) GetLinkedProfile(userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileWhere("user_id = ? AND is_player = 1", userID)
}

func (s *store) GetPlaceholder(userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getProfileWhere("user_id = ? AND is_player = 0", userID)
}

// PromotePlaceholder turns the signup placeholder into a pending player
// profile in place. It never inserts a second row for the same identity.
func (s *store) PromotePlaceholder(userID string, promo Promotion) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE profiles
		SET player_id = NULLIF(?, ''),
			name = CASE WHEN ? != '' THEN ? ELSE name END,
			position = NULLIF(?, ''),
			status = ?,
			is_player = 1,
			is_approved = 0
		WHERE user_id = ? AND is_player = 0
	`, promo.PlayerID, promo.Name, promo.Name, promo.Position, StatusPendente, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to promote placeholder for user %s: %w", userID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read promotion result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return s.getProfileWhere("user_id = ? AND is_player = 1", userID)
}

func (s *store) InsertPendingProfile(p NewProfile) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, player_id, name, email, birth_date, position, user_id, status, is_player, is_approved, created_by_admin, created_at)
		VALUES (?, NULLIF(?, ''), ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, 1, 0, 0, ?)
	`, id, p.PlayerID, p.Name, p.Email, p.BirthDate, p.Position, p.UserID, StatusPendente, time.Now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert pending profile: %w", err)
	}
	return s.getProfileWhere("id = ?", id)
}

func (s *store) DeletePlaceholder(userID, keepProfileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleting nothing is fine; the row may already be gone on a retry.
	_, err := s.db.Exec(`
		DELETE FROM profiles
		WHERE user_id = ? AND is_player = 0 AND id != ?
	`, userID, keepProfileID)
	if err != nil {
		return fmt.Errorf("failed to delete placeholder for user %s: %w", userID, err)
	}
	return nil
}

func (s *store) InsertMergeSuggestion(sg MergeSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sg.ID == "" {
		sg.ID = uuid.NewString()
	}
	_, err := s.db.Exec(`
		INSERT INTO merge_suggestions (id, profile_id, user_id, score, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sg.ID, sg.ProfileID, sg.UserID, sg.Score, sg.Reason, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert merge suggestion: %w", err)
	}
	return nil
}

func (s *store) GetMergeSuggestions() ([]MergeSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, profile_id, user_id, score, reason, created_at
		FROM merge_suggestions ORDER BY created_at DESC
	`)
	if err != nil {
		log.Error("Failed to query merge suggestions", "error", err)
		return nil, err
	}
	defer rows.Close()

	var suggestions []MergeSuggestion
	for rows.Next() {
		var sg MergeSuggestion
		var reason sql.NullString
		if err := rows.Scan(&sg.ID, &sg.ProfileID, &sg.UserID, &sg.Score, &reason, &sg.CreatedAt); err != nil {
			log.Error("Failed to scan merge suggestion row", "error", err)
			continue
		}
		sg.Reason = reason.String
		suggestions = append(suggestions, sg)
	}
	return suggestions, nil
}

func (s *store) GetAllProfiles() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + profileColumns + " FROM profiles ORDER BY name")
	if err != nil {
		log.Error("Failed to query all profiles", "error", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			log.Error("Failed to scan profile row", "error", err)
			continue
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// UpsertProfiles bulk-inserts admin-imported profiles. ON CONFLICT it
// refreshes the descriptive fields but never touches user_id or the claim
// token of an existing row.
func (s *store) UpsertProfiles(profiles []Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO profiles (id, player_id, name, nickname, email, birth_date, position, user_id, status, claim_token, is_player, is_approved, created_by_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_id = excluded.player_id,
			name = excluded.name,
			nickname = excluded.nickname,
			email = excluded.email,
			birth_date = excluded.birth_date,
			position = excluded.position,
			status = excluded.status,
			is_player = excluded.is_player,
			is_approved = excluded.is_approved,
			created_by_admin = excluded.created_by_admin;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range profiles {
		createdAt := p.CreatedAt
		if createdAt == 0 {
			createdAt = time.Now().Unix()
		}
		_, err = stmt.Exec(p.ID, p.PlayerID, p.Name, p.Nickname, p.Email, p.BirthDate, p.Position, p.UserID, p.Status, p.ClaimToken, p.IsPlayer, p.IsApproved, p.CreatedByAdmin, createdAt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// IssueClaimToken rotates the single-use claim token on a profile that is
// not linked to any user yet.
func (s *store) IssueClaimToken(profileID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	res, err := s.db.Exec(`
		UPDATE profiles SET claim_token = ?
		WHERE id = ? AND user_id IS NULL
	`, token, profileID)
	if err != nil {
		return "", fmt.Errorf("failed to issue claim token for profile %s: %w", profileID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to read token result: %w", err)
	}
	if affected == 0 {
		return "", fmt.Errorf("profile %s not found or already linked", profileID)
	}
	return token, nil
}

// getProfileWhere fetches a single profile. Callers hold the lock.
func (s *store) getProfileWhere(where string, args ...any) (*Profile, error) {
	row := s.db.QueryRow("SELECT "+profileColumns+" FROM profiles WHERE "+where, args...)
	p, err := scanProfile(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return p, nil
}

// scanProfile is a helper function to scan a single profile row.
func scanProfile(scanner interface{ Scan(...any) error }) (*Profile, error) {
	var p Profile
	var playerID, nickname, birthDate, position, userID, claimToken sql.NullString

	err := scanner.Scan(
		&p.ID, &playerID, &p.Name, &nickname, &p.Email, &birthDate, &position,
		&userID, &p.Status, &claimToken, &p.IsPlayer, &p.IsApproved, &p.CreatedByAdmin, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if playerID.Valid {
		p.PlayerID = &playerID.String
	}
	if nickname.Valid {
		p.Nickname = &nickname.String
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.String
	}
	if position.Valid {
		p.Position = &position.String
	}
	if userID.Valid {
		p.UserID = &userID.String
	}
	if claimToken.Valid {
		p.ClaimToken = &claimToken.String
	}
	return &p, nil
}
