package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory CredentialStore for exercising the manager chain
type memoryStore struct {
	creds    *Credentials
	storeErr error
}

func (m *memoryStore) Store(creds *Credentials) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.creds = creds
	return nil
}

func (m *memoryStore) Retrieve() (*Credentials, error) {
	if m.creds == nil {
		return nil, ErrCredentialsNotFound
	}
	return m.creds, nil
}

func (m *memoryStore) Delete() error {
	if m.creds == nil {
		return ErrCredentialsNotFound
	}
	m.creds = nil
	return nil
}

func (m *memoryStore) Exists() bool {
	return m.creds != nil
}

func TestManagerStoreValidation(t *testing.T) {
	manager := &Manager{stores: []CredentialStore{&memoryStore{}}}

	assert.Error(t, manager.Store(nil))
	assert.Error(t, manager.Store(&Credentials{Key: "no-username"}))
	assert.Error(t, manager.Store(&Credentials{Username: "no-key"}))
}

func TestManagerStoreSetsLastModified(t *testing.T) {
	backing := &memoryStore{}
	manager := &Manager{stores: []CredentialStore{backing}}

	require.NoError(t, manager.Store(&Credentials{Username: "alice", Key: "secret"}))
	require.NotNil(t, backing.creds)
	assert.False(t, backing.creds.LastModified.IsZero())
}

func TestManagerStoreFallsThroughChain(t *testing.T) {
	broken := &memoryStore{storeErr: ErrStoreUnavailable}
	working := &memoryStore{}
	manager := &Manager{stores: []CredentialStore{broken, working}}

	require.NoError(t, manager.Store(&Credentials{Username: "alice", Key: "secret"}))
	assert.Nil(t, broken.creds)
	assert.NotNil(t, working.creds)
}

func TestManagerRetrieveFirstHit(t *testing.T) {
	first := &memoryStore{creds: &Credentials{Username: "first", Key: "k1"}}
	second := &memoryStore{creds: &Credentials{Username: "second", Key: "k2"}}
	manager := &Manager{stores: []CredentialStore{&memoryStore{}, first, second}}

	creds, err := manager.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "first", creds.Username)
}

func TestManagerRetrieveEmpty(t *testing.T) {
	manager := &Manager{stores: []CredentialStore{&memoryStore{}}}

	_, err := manager.Retrieve()
	assert.True(t, errors.Is(err, ErrCredentialsNotFound))
}

func TestManagerDelete(t *testing.T) {
	first := &memoryStore{creds: &Credentials{Username: "a", Key: "k"}}
	second := &memoryStore{creds: &Credentials{Username: "a", Key: "k"}}
	manager := &Manager{stores: []CredentialStore{first, second}}

	require.NoError(t, manager.Delete())
	assert.False(t, manager.Exists())

	assert.True(t, errors.Is(manager.Delete(), ErrCredentialsNotFound))
}
