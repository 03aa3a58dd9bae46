package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJSONStore(t *testing.T) *KaggleJSONStore {
	t.Helper()
	store, err := NewKaggleJSONStore(filepath.Join(t.TempDir(), ".kaggle", "kaggle.json"))
	require.NoError(t, err)
	return store
}

func TestKaggleJSONStoreRoundTrip(t *testing.T) {
	store := newTestJSONStore(t)

	assert.False(t, store.Exists())
	_, err := store.Retrieve()
	assert.True(t, errors.Is(err, ErrCredentialsNotFound))

	require.NoError(t, store.Store(&Credentials{Username: "alice", Key: "secret"}))
	assert.True(t, store.Exists())

	creds, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "secret", creds.Key)

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
	assert.True(t, errors.Is(store.Delete(), ErrCredentialsNotFound))
}

func TestKaggleJSONStoreFilePermissions(t *testing.T) {
	store := newTestJSONStore(t)
	require.NoError(t, store.Store(&Credentials{Username: "alice", Key: "secret"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestKaggleJSONStoreOfficialFormat(t *testing.T) {
	// Interop: a kaggle.json written by the official CLI must be readable
	path := filepath.Join(t.TempDir(), "kaggle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"bob","key":"k3y"}`), 0600))

	store, err := NewKaggleJSONStore(path)
	require.NoError(t, err)

	creds, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "bob", creds.Username)
	assert.Equal(t, "k3y", creds.Key)
}

func TestKaggleJSONStoreRejectsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaggle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username":"bob"}`), 0600))

	store, err := NewKaggleJSONStore(path)
	require.NoError(t, err)

	_, err = store.Retrieve()
	assert.True(t, errors.Is(err, ErrCredentialsNotFound))
}

func TestKaggleJSONStoreInvalidCredentials(t *testing.T) {
	store := newTestJSONStore(t)
	assert.Error(t, store.Store(nil))
	assert.Error(t, store.Store(&Credentials{Key: "no-username"}))
}
