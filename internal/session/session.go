// Package session resolves the current identity from a bearer token and
// implements sign-out by revoking the token id until it expires.
package session

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrNoToken      = errors.New("session: no token")
	ErrTokenRevoked = errors.New("session: token revoked")
)

// Session is an authenticated identity. A nil *Session means no one is
// signed in; its methods are safe to call on nil.
type Session struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

func (s *Session) Identity() (uuid.UUID, bool) {
	if s == nil || s.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return s.UserID, true
}

type Manager struct {
	jwt         jwt.Service
	revocations Revocations
}

func NewManager(jwtSvc jwt.Service, revocations Revocations) *Manager {
	if revocations == nil {
		revocations = NewMemoryRevocations()
	}
	return &Manager{jwt: jwtSvc, revocations: revocations}
}

// Resolve validates an access token and returns its session. Expired,
// malformed, refresh and revoked tokens are all rejected.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if m.jwt.IsRefreshToken(claims) {
		return nil, jwt.ErrTokenInvalid
	}

	revoked, err := m.revocations.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &Session{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenID:   claims.TokenID(),
		ExpiresAt: claims.Expiry(),
	}, nil
}

// IsRevoked reports whether a token id was signed out. Used for refresh
// tokens, which never become sessions.
func (m *Manager) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return m.revocations.IsRevoked(ctx, tokenID)
}

// SignOut ends s. Signing out a nil session is a no-op.
func (m *Manager) SignOut(ctx context.Context, s *Session) error {
	if s == nil || s.TokenID == "" {
		return nil
	}
	return m.revocations.Revoke(ctx, s.TokenID, s.ExpiresAt)
}

// RevokeToken revokes a raw token id, e.g. the refresh token presented at
// sign-out.
func (m *Manager) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	return m.revocations.Revoke(ctx, tokenID, until)
}
