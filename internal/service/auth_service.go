package service

import (
	"fmt"

	"userdir/internal/auth"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(username, password string) (token string, err error)
}

type authService struct {
	creds      *auth.CredentialStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(creds *auth.CredentialStore, jwtService *auth.JWTService) AuthService {
	return &authService{creds: creds, jwtService: jwtService}
}

// Login validates the credential pair and issues a bearer token.
func (s *authService) Login(username, password string) (string, error) {
	profile, err := s.creds.Lookup(username, password)
	if err != nil {
		return "", err
	}

	token, err := s.jwtService.BuildToken(profile)
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}
	return token, nil
}
