package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenExpiry is the duration for which issued tokens are valid. Tokens
// carry no server-side state, so they cannot be revoked before expiry.
const TokenExpiry = 30 * time.Minute

// Claims represents JWT claims. The subject is the authenticated username
// and the ID is a per-token nonce.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	key      []byte
	issuer   string
	audience string
}

// NewJWTService creates a JWT service signing with the UTF-8 bytes of key.
func NewJWTService(key, issuer, audience string) *JWTService {
	return &JWTService{
		key:      []byte(key),
		issuer:   issuer,
		audience: audience,
	}
}

// BuildToken issues a compact HS256-signed token for the given profile.
func (s *JWTService) BuildToken(profile *Profile) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.Username,
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// ValidateToken validates signature, lifetime, issuer and audience and
// returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, errors.New("invalid token issuer")
	}
	if !claims.VerifyAudience(s.audience, true) {
		return nil, errors.New("invalid token audience")
	}

	return claims, nil
}
