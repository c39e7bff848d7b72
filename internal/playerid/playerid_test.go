package playerid_test

import (
	"testing"

	"github.com/ligadomingo/roster-link/internal/playerid"
	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	t.Run("combines normalized email and DDMMYYYY", func(t *testing.T) {
		got := playerid.Derive("Joao.Silva@Example.com", "1991-03-07")
		assert.Equal(t, "joaosilvaexamplecom07031991", got)
	})

	t.Run("empty without birth date", func(t *testing.T) {
		assert.Equal(t, "", playerid.Derive("joao@example.com", ""))
	})

	t.Run("empty on malformed birth date", func(t *testing.T) {
		assert.Equal(t, "", playerid.Derive("joao@example.com", "07/03/1991"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a := playerid.Derive("a+b@x.com", "2000-12-31")
		b := playerid.Derive("a+b@x.com", "2000-12-31")
		assert.Equal(t, a, b)
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "joaosilvaexamplecom", playerid.NormalizeEmail("  Joao.Silva@Example.COM "))
	assert.Equal(t, "ab123xcom", playerid.NormalizeEmail("a_b-123@x.com"))
	assert.Equal(t, "", playerid.NormalizeEmail(""))
}
