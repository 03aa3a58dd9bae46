package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KaggleJSONStore implements CredentialStore over the kaggle.json file the
// official Kaggle CLI writes, normally ~/.kaggle/kaggle.json.
type KaggleJSONStore struct {
	path string
}

// NewKaggleJSONStore creates a store over the given kaggle.json path. An
// empty path selects the official CLI's default location.
func NewKaggleJSONStore(path string) (*KaggleJSONStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".kaggle", "kaggle.json")
	}

	return &KaggleJSONStore{path: path}, nil
}

// Store writes credentials to kaggle.json with owner-only permissions, the
// same mode the official CLI insists on.
func (s *KaggleJSONStore) Store(creds *Credentials) error {
	if creds == nil || creds.Username == "" {
		return ErrInvalidCredentials
	}

	data, err := json.MarshalIndent(map[string]string{
		"username": creds.Username,
		"key":      creds.Key,
	}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write kaggle.json: %w", err)
	}

	return nil
}

// Retrieve reads credentials from kaggle.json
func (s *KaggleJSONStore) Retrieve() (*Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCredentialsNotFound
		}
		return nil, fmt.Errorf("failed to read kaggle.json: %w", err)
	}

	var raw struct {
		Username string `json:"username"`
		Key      string `json:"key"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse kaggle.json: %w", err)
	}

	if raw.Username == "" || raw.Key == "" {
		return nil, ErrCredentialsNotFound
	}

	return &Credentials{Username: raw.Username, Key: raw.Key}, nil
}

// Delete removes kaggle.json
func (s *KaggleJSONStore) Delete() error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return ErrCredentialsNotFound
		}
		return fmt.Errorf("failed to delete kaggle.json: %w", err)
	}
	return nil
}

// Exists checks if kaggle.json is present
func (s *KaggleJSONStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
