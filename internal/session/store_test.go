package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Init(filepath.Join(t.TempDir(), "backoffice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenWithoutInit(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newStore(t)

	loginTime := time.Now().Truncate(time.Second)
	require.NoError(t, store.Save(Session{
		Token:     "jwt",
		Email:     "admin@shop.test",
		Role:      "ADMIN",
		TokenType: "Bearer",
		ExpiresIn: 3600,
		LoginTime: loginTime,
	}))

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "jwt", sess.Token)
	assert.Equal(t, "ADMIN", sess.Role)
	assert.True(t, sess.LoginTime.Equal(loginTime))

	// Save again overwrites the single row.
	require.NoError(t, store.Save(Session{Token: "jwt2", Email: "e", Role: "r", TokenType: "Bearer", ExpiresIn: 60, LoginTime: loginTime}))
	sess, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "jwt2", sess.Token)
}

func TestLoadEmpty(t *testing.T) {
	store := newStore(t)
	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Empty(t, store.Token())
}

func TestCurrentExpiresLazily(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(Session{
		Token: "old", Email: "e", Role: "r", TokenType: "Bearer",
		ExpiresIn: 60,
		LoginTime: time.Now().Add(-2 * time.Minute),
	}))

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, sess, "expired session is treated as logged out")

	// And it was destroyed, not just hidden.
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	fresh := Session{ExpiresIn: 3600, LoginTime: now.Add(-time.Minute)}
	stale := Session{ExpiresIn: 60, LoginTime: now.Add(-2 * time.Minute)}
	forever := Session{ExpiresIn: 0, LoginTime: now.Add(-24 * time.Hour)}

	assert.False(t, fresh.Expired(now))
	assert.True(t, stale.Expired(now))
	assert.False(t, forever.Expired(now))
}

func TestClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(Session{Token: "jwt", Email: "e", Role: "r", TokenType: "Bearer", ExpiresIn: 3600, LoginTime: time.Now()}))
	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}
