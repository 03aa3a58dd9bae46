package auth

import (
	"os"
)

// EnvironmentStore implements CredentialStore using the KAGGLE_USERNAME and
// KAGGLE_KEY environment variables the official CLI also honors.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(creds *Credentials) error {
	return ErrStoreUnavailable
}

// Retrieve gets credentials from environment variables
func (e *EnvironmentStore) Retrieve() (*Credentials, error) {
	username := os.Getenv("KAGGLE_USERNAME")
	key := os.Getenv("KAGGLE_KEY")

	if username == "" || key == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Credentials{Username: username, Key: key}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials are set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("KAGGLE_USERNAME") != "" && os.Getenv("KAGGLE_KEY") != ""
}
