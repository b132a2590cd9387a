package auth

import (
	apperrors "userdir/internal/errors"
)

// Profile is the minimal identity returned by a successful credential lookup.
type Profile struct {
	Username string
}

// CredentialStore holds the single valid API credential pair. Loaded once
// at process start from configuration, immutable afterwards.
type CredentialStore struct {
	username string
	password string
}

// NewCredentialStore builds a store for the given credential pair.
func NewCredentialStore(username, password string) *CredentialStore {
	return &CredentialStore{username: username, password: password}
}

// Lookup compares both fields by exact, case-sensitive string equality and
// returns a profile on match.
func (s *CredentialStore) Lookup(username, password string) (*Profile, error) {
	if username != s.username || password != s.password {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &Profile{Username: username}, nil
}
