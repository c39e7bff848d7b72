package audit_test

import (
	"errors"
	"testing"

	"github.com/ligadomingo/roster-link/internal/audit"
	"github.com/ligadomingo/roster-link/internal/database"
	"github.com/ligadomingo/roster-link/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	ps := pubsub.NewMock("TEST")
	recorder := audit.New(db, ps)

	recorder.Record(audit.Entry{
		Action:          audit.ActionAutoLink,
		ActorID:         "user-1",
		TargetProfileID: "p1",
		Metadata:        map[string]any{"score": 95, "email": "rafael@example.com"},
	})
	recorder.Record(audit.Entry{
		Action:  audit.ActionNoMatch,
		ActorID: "user-2",
	})

	entries, err := recorder.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byAction := make(map[string]audit.Entry)
	for _, e := range entries {
		byAction[e.Action] = e
	}
	autoLink := byAction[audit.ActionAutoLink]
	assert.Equal(t, "user-1", autoLink.ActorID)
	assert.Equal(t, "p1", autoLink.TargetProfileID)
	assert.Equal(t, "rafael@example.com", autoLink.Metadata["email"])

	noMatch := byAction[audit.ActionNoMatch]
	assert.Empty(t, noMatch.TargetProfileID)
	assert.NotEmpty(t, noMatch.ID)

	t.Run("entries are mirrored to the event bus", func(t *testing.T) {
		require.Len(t, ps.SendMessageCalls, 2)
		assert.Equal(t, string(pubsub.EventPlayerLinking), ps.SendMessageCalls[0].Topic)
	})
}

func TestRecordIsBestEffort(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	ps := pubsub.NewMock("TEST")
	ps.SendMessageFunc = func(topic pubsub.EventType, data any) error {
		return errors.New("broker down")
	}
	recorder := audit.New(db, ps)

	// A failing publish must not panic or prevent the database append.
	recorder.Record(audit.Entry{Action: audit.ActionClaimedViaToken, ActorID: "user-1"})

	entries, err := recorder.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
