package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	s := NewStore(time.Hour)

	token := s.Create(Identity{UserID: "abc", Nombre: "Ana", Email: "ana@example.com"})
	require.NotEmpty(t, token)

	identity, ok := s.Get(token)
	require.True(t, ok)
	assert.Equal(t, "Ana", identity.Nombre)
	assert.False(t, identity.IsAdmin)

	s.Destroy(token)
	_, ok = s.Get(token)
	assert.False(t, ok)

	// Destroying again is not an error.
	s.Destroy(token)
}

func TestSessionTokensAreUnique(t *testing.T) {
	s := NewStore(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		token := s.Create(Identity{UserID: "u"})
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestSessionExpiry(t *testing.T) {
	s := NewStore(20 * time.Millisecond)

	token := s.Create(Identity{UserID: "abc"})
	_, ok := s.Get(token)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = s.Get(token)
	assert.False(t, ok)
}

func TestGetUnknownOrEmptyToken(t *testing.T) {
	s := NewStore(time.Hour)
	_, ok := s.Get("")
	assert.False(t, ok)
	_, ok = s.Get("no-existe")
	assert.False(t, ok)
}

func TestUpdateKeepsToken(t *testing.T) {
	s := NewStore(time.Hour)
	token := s.Create(Identity{UserID: "abc", Nombre: "Ana"})

	s.Update(token, Identity{UserID: "abc", Nombre: "Ana María"})
	identity, ok := s.Get(token)
	require.True(t, ok)
	assert.Equal(t, "Ana María", identity.Nombre)

	// Updating an unknown token is a no-op.
	s.Update("no-existe", Identity{Nombre: "x"})
	_, ok = s.Get("no-existe")
	assert.False(t, ok)
}
