package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	t.Run("starts unauthenticated without state file", func(t *testing.T) {
		s, err := Load(path)
		require.NoError(t, err)
		assert.False(t, s.Authenticated())
		assert.Empty(t, s.Token())
		assert.Equal(t, DefaultLanguage, s.Language())
	})

	t.Run("token persists across loads", func(t *testing.T) {
		s, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, s.SetToken("abc123"))
		assert.True(t, s.Authenticated())

		reloaded, err := Load(path)
		require.NoError(t, err)
		assert.True(t, reloaded.Authenticated())
		assert.Equal(t, "abc123", reloaded.Token())
	})

	t.Run("clear drops credential and notifies observers", func(t *testing.T) {
		s, err := Load(path)
		require.NoError(t, err)
		require.NoError(t, s.SetToken("abc123"))

		notified := 0
		s.OnLogout(func() { notified++ })

		require.NoError(t, s.Clear())
		assert.False(t, s.Authenticated())
		assert.Equal(t, 1, notified)

		// Clearing an already-cleared session does not re-notify.
		require.NoError(t, s.Clear())
		assert.Equal(t, 1, notified)
	})
}

func TestSessionLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.SetLanguage("pt"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pt", reloaded.Language())

	// Language survives logout.
	require.NoError(t, reloaded.Clear())
	assert.Equal(t, "pt", reloaded.Language())
}

func TestSessionCorruptStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}
