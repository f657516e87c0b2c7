// Package auth issues and verifies the bearer tokens gating the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by an issued token: a denormalized snapshot
// of the user's identity and permissions taken at login time.
type Claims struct {
	UserID      string   `json:"id"`
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	UserType    string   `json:"userType"`
	ClientNames []string `json:"clientNames"`
	FileTypes   []string `json:"fileTypes"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager signing with the given secret. Tokens are
// valid for ttl from issuance; there is no refresh mechanism.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given claims, stamping issuance and expiry.
func (m *Manager) Issue(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses and validates a token string, returning its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
