package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := newTestService()
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "a@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	c, err := s.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if c.UserID != id || c.Email != "a@example.com" || c.TokenType != TokenTypeAccess {
		t.Fatalf("unexpected claims %+v", c)
	}
	if c.TokenID() == "" || c.Expiry().IsZero() {
		t.Fatalf("token id and expiry must be set")
	}
	if s.IsRefreshToken(c) {
		t.Fatalf("access token reported as refresh")
	}
}

func TestRefreshTokenIsDistinguished(t *testing.T) {
	s := newTestService()
	tok, _ := s.GenerateRefreshToken(uuid.New())
	c, err := s.ValidateToken(tok)
	if err != nil || !s.IsRefreshToken(c) {
		t.Fatalf("expected refresh claims, got %+v %v", c, err)
	}
}

func TestTokenIDsAreUnique(t *testing.T) {
	s := newTestService()
	id := uuid.New()
	a, _ := s.GenerateAccessToken(id, "")
	b, _ := s.GenerateAccessToken(id, "")
	ca, _ := s.ValidateToken(a)
	cb, _ := s.ValidateToken(b)
	if ca.TokenID() == cb.TokenID() {
		t.Fatalf("each token needs its own id")
	}
}

func TestExpiredToken(t *testing.T) {
	s := newTestService()
	past := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return past }
	tok, _ := s.GenerateAccessToken(uuid.New(), "")

	s.now = time.Now
	if _, err := s.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestForeignSignatureRejected(t *testing.T) {
	other := NewHMACService("x", "y", time.Minute, time.Hour)
	tok, _ := other.GenerateAccessToken(uuid.New(), "")
	if _, err := newTestService().ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
