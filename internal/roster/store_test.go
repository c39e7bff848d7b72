package roster_test

import (
	"database/sql"
	"testing"

	"github.com/ligadomingo/roster-link/internal/database"
	"github.com/ligadomingo/roster-link/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (roster.RosterStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := roster.New(db)
	return store, db, dbTeardown
}

func insertAdminProfile(t *testing.T, db *sql.DB, id, name, email, token string) {
	t.Helper()
	var tok any
	if token != "" {
		tok = token
	}
	_, err := db.Exec(`
		INSERT INTO profiles (id, name, email, claim_token, is_player, created_by_admin, created_at)
		VALUES (?, ?, ?, ?, 1, 1, 0)
	`, id, name, email, tok)
	require.NoError(t, err)
}

func insertPlaceholder(t *testing.T, db *sql.DB, id, userID, name, email string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO profiles (id, name, email, user_id, is_player, created_at)
		VALUES (?, ?, ?, ?, 0, 0)
	`, id, name, email, userID)
	require.NoError(t, err)
}

func TestClaimProfileByToken(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertAdminProfile(t, db, "p1", "Rafael Costa", "rafael@example.com", "ABC123")

	t.Run("claims an unclaimed token", func(t *testing.T) {
		profile, err := store.ClaimProfileByToken("ABC123", "user-1")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "p1", profile.ID)
		require.NotNil(t, profile.UserID)
		assert.Equal(t, "user-1", *profile.UserID)
		assert.Nil(t, profile.ClaimToken, "claim must burn the token")
	})

	t.Run("reusing the token always fails", func(t *testing.T) {
		profile, err := store.ClaimProfileByToken("ABC123", "user-2")
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("unknown token falls through silently", func(t *testing.T) {
		profile, err := store.ClaimProfileByToken("NOPE", "user-2")
		require.NoError(t, err)
		assert.Nil(t, profile)
	})
}

func TestLinkProfileToUser(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertAdminProfile(t, db, "p1", "Rafael Costa", "rafael@example.com", "")

	linked, err := store.LinkProfileToUser("p1", "user-1", "user-1")
	require.NoError(t, err)
	assert.True(t, linked)

	t.Run("second caller loses the race", func(t *testing.T) {
		linked, err := store.LinkProfileToUser("p1", "user-2", "user-2")
		require.NoError(t, err)
		assert.False(t, linked, "conditional update must not rebind a linked profile")
	})

	t.Run("linked profile is retrievable by user", func(t *testing.T) {
		profile, err := store.GetLinkedProfile("user-1")
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "p1", profile.ID)
	})
}

func TestPromotePlaceholder(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertPlaceholder(t, db, "ph1", "user-1", "Rafael Costa", "rafael@example.com")

	promo := roster.Promotion{
		PlayerID: "rafaelexamplecom07031991",
		Position: "goleiro",
	}
	profile, err := store.PromotePlaceholder("user-1", promo)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "ph1", profile.ID, "promotion mutates the placeholder in place")
	assert.True(t, profile.IsPlayer)
	assert.False(t, profile.IsApproved)
	assert.Equal(t, roster.StatusPendente, profile.Status)
	require.NotNil(t, profile.PlayerID)
	assert.Equal(t, "rafaelexamplecom07031991", *profile.PlayerID)
	require.NotNil(t, profile.Position)
	assert.Equal(t, "goleiro", *profile.Position)

	t.Run("no second row is created", func(t *testing.T) {
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM profiles WHERE user_id = 'user-1'").Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("returns nil when no placeholder exists", func(t *testing.T) {
		profile, err := store.PromotePlaceholder("user-2", promo)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("empty player id stays null", func(t *testing.T) {
		insertPlaceholder(t, db, "ph2", "user-3", "Sem Data", "semdata@example.com")
		profile, err := store.PromotePlaceholder("user-3", roster.Promotion{})
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Nil(t, profile.PlayerID)
	})

	t.Run("derived key colliding with another profile still promotes", func(t *testing.T) {
		// Same email and birth date as an existing admin record: the very
		// situation merge review exists for. The promotion must not fail.
		_, err := db.Exec(`
			INSERT INTO profiles (id, player_id, name, email, is_player, created_by_admin, created_at)
			VALUES ('p9', 'rafaelexamplecom07031991', 'Rafael Costa', 'rafael@example.com', 1, 1, 0)
		`)
		require.NoError(t, err)
		insertPlaceholder(t, db, "ph4", "user-4", "", "rafael@example.com")

		profile, err := store.PromotePlaceholder("user-4", roster.Promotion{
			PlayerID: "rafaelexamplecom07031991",
		})
		require.NoError(t, err)
		require.NotNil(t, profile)
		require.NotNil(t, profile.PlayerID)
		assert.Equal(t, "rafaelexamplecom07031991", *profile.PlayerID)
	})
}

func TestDeletePlaceholder(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertPlaceholder(t, db, "ph1", "user-1", "Rafael Costa", "rafael@example.com")

	require.NoError(t, store.DeletePlaceholder("user-1", "p1"))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = 'ph1'").Scan(&count))
	assert.Equal(t, 0, count)

	t.Run("tolerates the row already being absent", func(t *testing.T) {
		assert.NoError(t, store.DeletePlaceholder("user-1", "p1"))
	})

	t.Run("never deletes the kept profile", func(t *testing.T) {
		insertPlaceholder(t, db, "ph2", "user-2", "Outro", "outro@example.com")
		require.NoError(t, store.DeletePlaceholder("user-2", "ph2"))
		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = 'ph2'").Scan(&count))
		assert.Equal(t, 1, count)
	})
}

func TestInsertPendingProfile(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	profile, err := store.InsertPendingProfile(roster.NewProfile{
		UserID:    "user-1",
		PlayerID:  "anaexamplecom01021990",
		Name:      "Ana Souza",
		Email:     "ana@example.com",
		BirthDate: "1990-02-01",
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, profile.IsPlayer)
	assert.Equal(t, roster.StatusPendente, profile.Status)

	t.Run("concurrent duplicate surfaces ErrDuplicate", func(t *testing.T) {
		_, err := store.InsertPendingProfile(roster.NewProfile{
			UserID: "user-1",
			Name:   "Ana Souza",
			Email:  "ana@example.com",
		})
		assert.ErrorIs(t, err, roster.ErrDuplicate)
	})

	t.Run("colliding derived key is not a duplicate", func(t *testing.T) {
		profile, err := store.InsertPendingProfile(roster.NewProfile{
			UserID:    "user-2",
			PlayerID:  "anaexamplecom01021990",
			Name:      "Ana Souza",
			Email:     "ana@example.com",
			BirthDate: "1990-02-01",
		})
		require.NoError(t, err)
		require.NotNil(t, profile)
	})
}

func TestIssueClaimToken(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertAdminProfile(t, db, "p1", "Rafael Costa", "rafael@example.com", "")

	token, err := store.IssueClaimToken("p1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Run("rotating replaces the previous token", func(t *testing.T) {
		next, err := store.IssueClaimToken("p1")
		require.NoError(t, err)
		assert.NotEqual(t, token, next)

		profile, err := store.ClaimProfileByToken(token, "user-1")
		require.NoError(t, err)
		assert.Nil(t, profile, "a rotated token is no longer claimable")
	})

	t.Run("refuses a linked profile", func(t *testing.T) {
		linked, err := store.LinkProfileToUser("p1", "user-1", "admin-1")
		require.NoError(t, err)
		require.True(t, linked)

		_, err = store.IssueClaimToken("p1")
		assert.Error(t, err)
	})
}

func TestUpsertProfiles(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	playerID := "rafaelexamplecom07031991"
	profiles := []roster.Profile{
		{ID: "p1", Name: "Rafael Costa", Email: "rafael@example.com", PlayerID: &playerID, Status: roster.StatusAtivo, IsPlayer: true, CreatedByAdmin: true},
		{ID: "p2", Name: "Ana Souza", Email: "ana@example.com", Status: roster.StatusAtivo, IsPlayer: true, CreatedByAdmin: true},
	}
	require.NoError(t, store.UpsertProfiles(profiles))

	all, err := store.GetAllProfiles()
	require.NoError(t, err)
	require.Len(t, all, 2)

	t.Run("reimport does not clobber a link", func(t *testing.T) {
		linked, err := store.LinkProfileToUser("p1", "user-1", "user-1")
		require.NoError(t, err)
		require.True(t, linked)

		require.NoError(t, store.UpsertProfiles(profiles))

		profile, err := store.GetProfile("p1")
		require.NoError(t, err)
		require.NotNil(t, profile.UserID)
		assert.Equal(t, "user-1", *profile.UserID)
	})
}

func TestMergeSuggestions(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	insertAdminProfile(t, db, "p1", "Rafael Costa", "rafael@example.com", "")

	require.NoError(t, store.InsertMergeSuggestion(roster.MergeSuggestion{
		ProfileID: "p1",
		UserID:    "user-1",
		Score:     75,
		Reason:    "email_similar",
	}))

	suggestions, err := store.GetMergeSuggestions()
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "p1", suggestions[0].ProfileID)
	assert.Equal(t, 75, suggestions[0].Score)
	assert.NotEmpty(t, suggestions[0].ID)
}
