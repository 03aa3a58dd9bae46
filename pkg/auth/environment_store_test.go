package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentStoreRetrieve(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "secret")

	store := NewEnvironmentStore()
	assert.True(t, store.Exists())

	creds, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "secret", creds.Key)
}

func TestEnvironmentStoreRequiresBothVariables(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "")

	store := NewEnvironmentStore()
	assert.False(t, store.Exists())

	_, err := store.Retrieve()
	assert.True(t, errors.Is(err, ErrCredentialsNotFound))
}

func TestEnvironmentStoreReadOnly(t *testing.T) {
	store := NewEnvironmentStore()

	err := store.Store(&Credentials{Username: "alice", Key: "secret"})
	assert.True(t, errors.Is(err, ErrStoreUnavailable))

	assert.True(t, errors.Is(store.Delete(), ErrStoreUnavailable))
}
