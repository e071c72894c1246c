// Package token issues and verifies the signed session tokens the API uses
// in place of server-side session storage.
package token

import (
	"fmt"
	"time"

	"venuebook/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "venuebook"

// Claims is the session payload embedded in every token.
type Claims struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a session token for the user. Returns the token and its expiry.
func (m *Manager) Issue(user *model.User) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify parses and validates a session token and returns the principal it
// carries. Expired, malformed, or foreign-signed tokens all fail.
func (m *Manager) Verify(tokenString string) (model.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid session token")
	}

	return model.Principal{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
