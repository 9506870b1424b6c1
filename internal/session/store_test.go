package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Hydrating an empty directory leaves the store unauthenticated
	require.NoError(t, store.Hydrate())
	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, store.Token())

	sess := Session{
		UserID:         "u-1",
		OrganizationID: "org-1",
		Email:          "dev@example.com",
		BearerToken:    "tok-abc",
	}
	require.NoError(t, store.Save(sess))

	// Token presence implies IsAuthenticated
	assert.True(t, store.Current().IsAuthenticated)
	assert.Equal(t, "tok-abc", store.Token())

	// A fresh store hydrates the persisted session
	rehydrated := NewStore(dir)
	require.NoError(t, rehydrated.Hydrate())
	assert.Equal(t, "u-1", rehydrated.Current().UserID)
	assert.True(t, rehydrated.Current().IsAuthenticated)

	// Clear removes memory and disk state
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	_, err := os.Stat(filepath.Join(dir, sessionFile))
	assert.True(t, os.IsNotExist(err))
}

func TestStoreFilePermissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(Session{BearerToken: "secret"}))

	info, err := os.Stat(filepath.Join(dir, sessionFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "token file must be owner-only")
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0600))

	store := NewStore(dir)
	err := store.Hydrate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION-003")
}

func TestSaveWithoutTokenIsUnauthenticated(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(Session{Email: "dev@example.com", IsAuthenticated: true}))
	assert.False(t, store.Current().IsAuthenticated,
		"IsAuthenticated is derived from token presence, never trusted from input")
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}
