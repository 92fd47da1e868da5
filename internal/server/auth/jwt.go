// Package auth signs and verifies the authentication tokens carried in the
// token cookie: HS256 JWTs whose subject is the user id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity is the lifetime of an issued token.
const DefaultValidity = 3 * 24 * time.Hour

var errEmptySecret = errors.New("token secret is empty")

// Manager issues and verifies tokens with a process-wide secret. It is safe
// for concurrent use; its fields never change after construction.
type Manager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, which tests use to move around expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager signing with secret. A non-positive validity
// falls back to DefaultValidity.
func NewManager(secret []byte, validity time.Duration, opts ...Option) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	if validity <= 0 {
		validity = DefaultValidity
	}
	m := &Manager{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Validity is the lifetime given to every issued token.
func (m *Manager) Validity() time.Duration {
	return m.validity
}

// Issue returns a signed token for userID expiring Validity() from now.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
	})

	return token.SignedString(m.secret)
}

// Verify returns the user id bound to tokenString. ok is false for any token
// that is malformed, not HS256, signed with another key, expired, or has no
// subject.
func (m *Manager) Verify(tokenString string) (userID string, ok bool) {
	if tokenString == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return "", false
	}
	if claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}
