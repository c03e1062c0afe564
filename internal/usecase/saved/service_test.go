package saved

import (
	"context"
	"strings"
	"sync"
	"testing"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/repository/memory"
	"jobboard/internal/session"
	"jobboard/internal/usecase/savetoggle"

	"github.com/google/uuid"
)

func setup(t *testing.T) (*memory.DB, *session.Session, listing.Listing) {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	uid := uuid.New()
	if err := db.Users().Create(ctx, user.User{ID: uid, Email: "a@example.com"}); err != nil {
		t.Fatalf("user: %v", err)
	}
	l, err := db.Listings().Insert(ctx, uid, listing.Fields{
		Title:       "Backend Developer",
		Company:     "Acme",
		Description: strings.Repeat("x", 60),
		Location:    "Remote",
		Category:    listing.CategoryFullTime,
	})
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	return db, &session.Session{UserID: uid}, l
}

func TestService_ToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, sess, l := setup(t)
	svc := NewService(db.Saved(), nil)

	if s, _ := svc.Status(ctx, sess, l.ID); s != savetoggle.NotSaved {
		t.Fatalf("expected NotSaved, got %v", s)
	}
	if s, err := svc.Toggle(ctx, sess, l.ID); err != nil || s != savetoggle.Saved {
		t.Fatalf("toggle on: %v %v", s, err)
	}
	items, _ := svc.List(ctx, sess)
	if len(items) != 1 || items[0].ID != l.ID {
		t.Fatalf("saved view must list the listing once, got %+v", items)
	}
	if s, err := svc.Toggle(ctx, sess, l.ID); err != nil || s != savetoggle.NotSaved {
		t.Fatalf("toggle off: %v %v", s, err)
	}
	if items, _ = svc.List(ctx, sess); len(items) != 0 {
		t.Fatalf("saved view must be empty, got %+v", items)
	}
}

func TestService_ConcurrentSavesKeepOneMark(t *testing.T) {
	ctx := context.Background()
	db, sess, l := setup(t)
	svc := NewService(db.Saved(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Save(ctx, sess, l.ID); err != nil {
				t.Errorf("save: %v", err)
			}
		}()
	}
	wg.Wait()

	if n, _ := db.Saved().Count(ctx, sess.UserID); n != 1 {
		t.Fatalf("expected one mark, got %d", n)
	}

	if _, err := svc.Unsave(ctx, sess, l.ID); err != nil {
		t.Fatalf("unsave: %v", err)
	}
	if _, err := svc.Unsave(ctx, sess, l.ID); err != nil {
		t.Fatalf("second unsave must be a no-op: %v", err)
	}
	if n, _ := db.Saved().Count(ctx, sess.UserID); n != 0 {
		t.Fatalf("expected zero marks, got %d", n)
	}
}

func TestService_Anonymous(t *testing.T) {
	ctx := context.Background()
	db, _, l := setup(t)
	svc := NewService(db.Saved(), nil)

	if _, err := svc.Toggle(ctx, nil, l.ID); !apperr.Is(err, apperr.KindAuthRequired) {
		t.Fatalf("expected AuthRequired, got %v", err)
	}
	if _, err := svc.List(ctx, nil); !apperr.Is(err, apperr.KindAuthRequired) {
		t.Fatalf("expected AuthRequired, got %v", err)
	}
}

func TestService_SaveMissingListing(t *testing.T) {
	db, sess, _ := setup(t)
	_, err := NewService(db.Saved(), nil).Save(context.Background(), sess, uuid.New())
	if !apperr.Is(err, apperr.KindNotFoundOrForbidden) {
		t.Fatalf("expected NotFoundOrForbidden, got %v", err)
	}
}
