package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/pkg/jwt"

	"github.com/google/uuid"
)

func newManager() (*Manager, *jwt.HMACService) {
	svc := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	return NewManager(svc, NewMemoryRevocations()), svc
}

func TestNilSessionHasNoIdentity(t *testing.T) {
	var s *Session
	if _, ok := s.Identity(); ok {
		t.Fatalf("nil session must be anonymous")
	}
}

func TestResolveAndSignOut(t *testing.T) {
	ctx := context.Background()
	m, svc := newManager()
	id := uuid.New()
	tok, _ := svc.GenerateAccessToken(id, "a@example.com")

	s, err := m.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got, ok := s.Identity(); !ok || got != id {
		t.Fatalf("unexpected identity %v %v", got, ok)
	}

	if err := m.SignOut(ctx, s); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, err := m.Resolve(ctx, tok); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked after sign-out, got %v", err)
	}
}

func TestResolveRejectsRefreshAndEmpty(t *testing.T) {
	ctx := context.Background()
	m, svc := newManager()
	refresh, _ := svc.GenerateRefreshToken(uuid.New())

	if _, err := m.Resolve(ctx, refresh); !errors.Is(err, jwt.ErrTokenInvalid) {
		t.Fatalf("refresh token must not open a session, got %v", err)
	}
	if _, err := m.Resolve(ctx, ""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestMemoryRevocationsExpire(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevocations()
	now := time.Now()
	r.now = func() time.Time { return now }

	_ = r.Revoke(ctx, "t1", now.Add(time.Minute))
	if ok, _ := r.IsRevoked(ctx, "t1"); !ok {
		t.Fatalf("expected revoked")
	}

	r.now = func() time.Time { return now.Add(2 * time.Minute) }
	if ok, _ := r.IsRevoked(ctx, "t1"); ok {
		t.Fatalf("revocation should lapse with the token")
	}
}

func TestRedisRevocationsFallsBackWithoutURL(t *testing.T) {
	ctx := context.Background()
	r := NewRedisRevocations(ctx, "", nil)
	if r.Available() {
		t.Fatalf("no url means no redis")
	}
	_ = r.Revoke(ctx, "t1", time.Now().Add(time.Minute))
	if ok, _ := r.IsRevoked(ctx, "t1"); !ok {
		t.Fatalf("fallback list must record revocations")
	}
}
