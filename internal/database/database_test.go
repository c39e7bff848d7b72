package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {

	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	// Check if the 'profiles' table was created
	var profilesTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='profiles'").Scan(&profilesTableName)
	require.NoError(t, err, "Querying for profiles table should not produce an error")
	assert.Equal(t, "profiles", profilesTableName, "The 'profiles' table should be created")

	// Check if the 'merge_suggestions' table was created
	var suggestionsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='merge_suggestions'").Scan(&suggestionsTableName)
	require.NoError(t, err, "Querying for merge_suggestions table should not produce an error")
	assert.Equal(t, "merge_suggestions", suggestionsTableName, "The 'merge_suggestions' table should be created")

	// Check if the 'audit_entries' table was created
	var auditTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='audit_entries'").Scan(&auditTableName)
	require.NoError(t, err, "Querying for audit_entries table should not produce an error")
	assert.Equal(t, "audit_entries", auditTableName, "The 'audit_entries' table should be created")
}

func TestInitDB_UserIDUnique(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO profiles (id, name, email, user_id, is_player, created_at) VALUES ('p1', 'A', 'a@x.com', 'u1', 1, 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO profiles (id, name, email, user_id, is_player, created_at) VALUES ('p2', 'B', 'b@x.com', 'u1', 1, 0)`)
	assert.Error(t, err, "two player profiles must never hold the same user_id")

	// Placeholders sit outside the uniqueness constraint so a fresh link can
	// coexist with its not-yet-deleted placeholder.
	_, err = db.Exec(`INSERT INTO profiles (id, name, email, user_id, is_player, created_at) VALUES ('p3', 'C', 'c@x.com', 'u1', 0, 0)`)
	assert.NoError(t, err)
}
