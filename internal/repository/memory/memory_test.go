package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

func seedUser(t *testing.T, db *DB, email string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	if err := db.Users().Create(context.Background(), user.User{ID: id, Email: email, PasswordHash: "x"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func fields(title, company, location string, c listing.Category) listing.Fields {
	return listing.Fields{
		Title:       title,
		Company:     company,
		Description: strings.Repeat("d", 60),
		Location:    location,
		Category:    c,
	}
}

func TestListingStore_SelectFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	owner := seedUser(t, db, "a@example.com")
	s := db.Listings()

	first, _ := s.Insert(ctx, owner, fields("Backend Developer", "ServerTech", "Seattle, WA", listing.CategoryFullTime))
	second, _ := s.Insert(ctx, owner, fields("Designer", "DesignStudio", "Remote", listing.CategoryContract))

	all, err := s.Select(ctx, listing.Predicate{}, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	got, _ := s.Select(ctx, listing.Predicate{Query: "SERVERTECH"}, 0)
	if len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("case-insensitive company match failed: %+v", got)
	}

	limited, _ := s.Select(ctx, listing.Predicate{}, 1)
	if len(limited) != 1 {
		t.Fatalf("limit ignored")
	}
}

func TestListingStore_InsertRequiresOwner(t *testing.T) {
	db := NewDB()
	_, err := db.Listings().Insert(context.Background(), uuid.New(), fields("Dev", "Acme", "NY", listing.CategoryFullTime))
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
}

func TestListingStore_RejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	owner := seedUser(t, db, "a@example.com")

	_, err := db.Listings().Insert(ctx, owner, fields("Dev", "Acme", "NY", "Internship"))
	if !errors.Is(err, listing.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}

	l, err := db.Listings().Insert(ctx, owner, fields("Dev", "Acme", "NY", listing.CategoryContract))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	_, err = db.Listings().Update(ctx, listing.Owned(l.ID, owner), fields("Dev", "Acme", "NY", "Internship"))
	if !errors.Is(err, listing.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory on update, got %v", err)
	}
}

func TestListingStore_ConjoinedMutations(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	owner := seedUser(t, db, "a@example.com")
	other := seedUser(t, db, "b@example.com")
	s := db.Listings()

	l, _ := s.Insert(ctx, owner, fields("Dev", "Acme", "NY", listing.CategoryFullTime))

	n, err := s.Update(ctx, listing.Owned(l.ID, other), fields("Hijack", "Evil", "Nowhere", listing.CategoryContract))
	if err != nil || n != 0 {
		t.Fatalf("foreign update must affect nothing, got %d %v", n, err)
	}
	n, _ = s.Delete(ctx, listing.Owned(l.ID, other))
	if n != 0 {
		t.Fatalf("foreign delete must affect nothing")
	}

	n, _ = s.Update(ctx, listing.Owned(l.ID, owner), fields("Senior Dev", "Acme", "NY", listing.CategoryFullTime))
	if n != 1 {
		t.Fatalf("owner update must affect one row")
	}
	updated, _ := s.SelectOne(ctx, listing.ByID(l.ID))
	if updated.Title != "Senior Dev" || updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("unexpected updated listing: %+v", updated)
	}

	if _, err := s.Update(ctx, listing.ByOwner(owner), fields("x", "y", "z", listing.CategoryFullTime)); !errors.Is(err, listing.ErrUnscopedMutation) {
		t.Fatalf("update without id must be rejected, got %v", err)
	}
	if _, err := s.Delete(ctx, listing.Predicate{}); !errors.Is(err, listing.ErrUnscopedMutation) {
		t.Fatalf("delete without id must be rejected, got %v", err)
	}
}

func TestListingStore_DeleteCascadesSavedMarks(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	owner := seedUser(t, db, "a@example.com")
	l, _ := db.Listings().Insert(ctx, owner, fields("Dev", "Acme", "NY", listing.CategoryFullTime))
	if _, err := db.Saved().Insert(ctx, owner, l.ID); err != nil {
		t.Fatalf("save: %v", err)
	}

	if n, _ := db.Listings().Delete(ctx, listing.Owned(l.ID, owner)); n != 1 {
		t.Fatalf("delete failed")
	}
	if c, _ := db.Saved().Count(ctx, owner); c != 0 {
		t.Fatalf("saved marks must cascade, count=%d", c)
	}
}

func TestListingStore_Locations(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	owner := seedUser(t, db, "a@example.com")
	for _, loc := range []string{"Remote", "Austin, TX", "Remote"} {
		if _, err := db.Listings().Insert(ctx, owner, fields("Dev", "Acme", loc, listing.CategoryFullTime)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	locs, _ := db.Listings().Locations(ctx)
	if len(locs) != 2 || locs[0] != "Austin, TX" || locs[1] != "Remote" {
		t.Fatalf("unexpected locations %v", locs)
	}
}

func TestSavedStore_UniquePairAndOrder(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	u := seedUser(t, db, "a@example.com")
	a, _ := db.Listings().Insert(ctx, u, fields("A", "Acme", "NY", listing.CategoryFullTime))
	b, _ := db.Listings().Insert(ctx, u, fields("B", "Acme", "NY", listing.CategoryFullTime))

	if _, err := db.Saved().Insert(ctx, u, b.ID); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if _, err := db.Saved().Insert(ctx, u, a.ID); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if _, err := db.Saved().Insert(ctx, u, a.ID); !errors.Is(err, savedmark.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if _, err := db.Saved().Insert(ctx, u, uuid.New()); !errors.Is(err, savedmark.ErrListingNotFound) {
		t.Fatalf("expected listing not found, got %v", err)
	}

	got, _ := db.Saved().Listings(ctx, u)
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Fatalf("expected most recently saved first, got %+v", got)
	}

	removed, _ := db.Saved().Delete(ctx, u, a.ID)
	again, _ := db.Saved().Delete(ctx, u, a.ID)
	if !removed || again {
		t.Fatalf("delete should report removal once: %v %v", removed, again)
	}
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	id := seedUser(t, db, "a@example.com")

	if err := db.Users().Create(ctx, user.User{ID: uuid.New(), Email: "a@example.com"}); !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	name := "Ada"
	if err := db.Users().UpdateProfile(ctx, id, &name); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	u, err := db.Users().GetByEmail(ctx, "a@example.com")
	if err != nil || u.FullName == nil || *u.FullName != "Ada" {
		t.Fatalf("unexpected user %+v %v", u, err)
	}
	if _, err := db.Users().GetByID(ctx, uuid.New()); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTick_StrictlyIncreasing(t *testing.T) {
	db := NewDB()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return fixed }

	a := db.tick()
	b := db.tick()
	if !b.After(a) {
		t.Fatalf("timestamps must increase: %v %v", a, b)
	}
}
