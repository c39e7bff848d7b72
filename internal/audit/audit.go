package audit

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ligadomingo/roster-link/internal/pubsub"
)

// New creates a new Recorder backed by the database and the event bus.
func New(db *sql.DB, ps pubsub.PubSubClient) Recorder {
	return &recorder{
		db:     db,
		pubsub: ps,
	}
}

// Record appends the entry and publishes it to the player-linking topic.
// Both writes are best-effort; failures are logged for operators only.
func (r *recorder) Record(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	var metadataJSON []byte
	if entry.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			log.Error("Failed to marshal audit metadata", "error", err, "action", entry.Action)
		}
	}

	var target any
	if entry.TargetProfileID != "" {
		target = entry.TargetProfileID
	}
	_, err := r.db.Exec(`
		INSERT INTO audit_entries (id, action, actor_id, target_profile_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Action, entry.ActorID, target, string(metadataJSON), entry.CreatedAt)
	if err != nil {
		log.Error("Failed to append audit entry", "error", err, "action", entry.Action, "actorID", entry.ActorID)
	}

	if r.pubsub != nil {
		if err := r.pubsub.SendMessage(pubsub.EventPlayerLinking, entry); err != nil {
			log.Error("Failed to publish audit event", "error", err, "action", entry.Action)
		}
	}
}

// List returns all audit entries, newest first.
func (r *recorder) List() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`
		SELECT id, action, actor_id, target_profile_id, metadata, created_at
		FROM audit_entries ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var target, metadata sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.ActorID, &target, &metadata, &e.CreatedAt); err != nil {
			log.Error("Failed to scan audit row", "error", err)
			continue
		}
		e.TargetProfileID = target.String
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &e.Metadata); err != nil {
				log.Error("Failed to unmarshal audit metadata", "error", err, "id", e.ID)
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
