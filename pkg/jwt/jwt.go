package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents the session token payload.
// The only identity the API carries is the author id.
type Claims struct {
	AuthorID string `json:"author_id"`
	jwt.RegisteredClaims
}

// Manager handles session token operations
type Manager struct {
	secret string
	expiry time.Duration
}

// NewManager creates a token manager. Tokens expire after `expiry`
// (1 hour by default at the config layer).
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{secret: secret, expiry: expiry}
}

// Expiry returns the configured token lifetime
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// Generate signs a session token embedding the author id
func (m *Manager) Generate(authorID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		AuthorID: authorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// Validate verifies signature and expiry, returning the embedded author id.
// Any failure collapses into ErrInvalidToken so callers never branch on
// parser internals.
func (m *Manager) Validate(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	authorID, err := uuid.Parse(claims.AuthorID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return authorID, nil
}
