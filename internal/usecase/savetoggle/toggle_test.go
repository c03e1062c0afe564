package savetoggle

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/session"

	"github.com/google/uuid"
)

type fakeSavedStore struct {
	mu        sync.Mutex
	marks     map[uuid.UUID]bool
	calls     int
	insertErr error
	deleteErr error
	block     chan struct{}
	// When set, SelectOne reports on selected after reading and waits on
	// release before returning.
	selected chan struct{}
	release  chan struct{}
}

func newFakeSavedStore() *fakeSavedStore {
	return &fakeSavedStore{marks: map[uuid.UUID]bool{}}
}

func (f *fakeSavedStore) SelectOne(_ context.Context, _, listingID uuid.UUID) (savedmark.SavedMark, bool, error) {
	f.mu.Lock()
	f.calls++
	saved := f.marks[listingID]
	selected, release := f.selected, f.release
	f.mu.Unlock()
	if selected != nil {
		selected <- struct{}{}
		<-release
	}
	return savedmark.SavedMark{}, saved, nil
}

func (f *fakeSavedStore) Insert(_ context.Context, _, listingID uuid.UUID) (savedmark.SavedMark, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.insertErr != nil {
		return savedmark.SavedMark{}, f.insertErr
	}
	if f.marks[listingID] {
		return savedmark.SavedMark{}, savedmark.ErrDuplicate
	}
	f.marks[listingID] = true
	return savedmark.SavedMark{}, nil
}

func (f *fakeSavedStore) Delete(_ context.Context, _, listingID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	had := f.marks[listingID]
	delete(f.marks, listingID)
	return had, nil
}

func (f *fakeSavedStore) Listings(context.Context, uuid.UUID) ([]listing.Listing, error) {
	return nil, nil
}

func (f *fakeSavedStore) Count(context.Context, uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.marks), nil
}

func signedIn() *session.Session {
	return &session.Session{UserID: uuid.New()}
}

func TestToggle_RequiresCheckFirst(t *testing.T) {
	tg := New(newFakeSavedStore(), signedIn(), uuid.New())
	if _, err := tg.Toggle(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestToggle_NoSessionRedirectsWithoutStoreCall(t *testing.T) {
	store := newFakeSavedStore()
	tg := New(store, nil, uuid.New())

	if s, err := tg.Check(context.Background()); err != nil || s != NotSaved {
		t.Fatalf("anonymous check: %v %v", s, err)
	}
	if _, err := tg.Toggle(context.Background()); !apperr.Is(err, apperr.KindAuthRequired) {
		t.Fatalf("expected AuthRequired, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store must not be called without a session, got %d calls", store.calls)
	}
}

func TestToggle_SaveThenUnsaveLeavesNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	listingID := uuid.New()
	tg := New(store, signedIn(), listingID)

	if _, err := tg.Check(ctx); err != nil {
		t.Fatalf("check: %v", err)
	}
	if s, err := tg.Toggle(ctx); err != nil || s != Saved {
		t.Fatalf("save: %v %v", s, err)
	}
	if s, err := tg.Toggle(ctx); err != nil || s != NotSaved {
		t.Fatalf("unsave: %v %v", s, err)
	}
	if n, _ := store.Count(ctx, uuid.Nil); n != 0 {
		t.Fatalf("expected zero marks, got %d", n)
	}
}

func TestSave_TwiceLeavesExactlyOne(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	listingID := uuid.New()
	sess := signedIn()

	// Two independent toggles racing on the same pair, as two requests would.
	a := New(store, sess, listingID)
	b := New(store, sess, listingID)
	_, _ = a.Check(ctx)
	_, _ = b.Check(ctx)

	if s, err := a.Toggle(ctx); err != nil || s != Saved {
		t.Fatalf("first save: %v %v", s, err)
	}
	if s, err := b.Toggle(ctx); err != nil || s != Saved {
		t.Fatalf("duplicate save must confirm Saved: %v %v", s, err)
	}
	if n, _ := store.Count(ctx, uuid.Nil); n != 1 {
		t.Fatalf("expected exactly one mark, got %d", n)
	}

	if s, err := a.Save(ctx); err != nil || s != Saved {
		t.Fatalf("idempotent save: %v %v", s, err)
	}
}

func TestToggle_FailureRestoresPriorState(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	store.insertErr = errors.New("timeout")
	tg := New(store, signedIn(), uuid.New())
	_, _ = tg.Check(ctx)

	s, err := tg.Toggle(ctx)
	if !apperr.Is(err, apperr.KindStore) || s != NotSaved || tg.State() != NotSaved {
		t.Fatalf("failed save must revert to NotSaved: %v %v", s, err)
	}

	store.insertErr = nil
	_, _ = tg.Toggle(ctx)
	store.deleteErr = errors.New("timeout")
	s, err = tg.Toggle(ctx)
	if !apperr.Is(err, apperr.KindStore) || s != Saved || tg.State() != Saved {
		t.Fatalf("failed unsave must revert to Saved: %v %v", s, err)
	}
}

func TestToggle_MissingListing(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	store.insertErr = savedmark.ErrListingNotFound
	tg := New(store, signedIn(), uuid.New())
	_, _ = tg.Check(ctx)

	if _, err := tg.Toggle(ctx); !apperr.Is(err, apperr.KindNotFoundOrForbidden) {
		t.Fatalf("expected NotFoundOrForbidden, got %v", err)
	}
	if tg.State() != NotSaved {
		t.Fatalf("state must stay NotSaved")
	}
}

func TestToggle_BusyWhileInFlight(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	store.block = make(chan struct{})
	tg := New(store, signedIn(), uuid.New())
	_, _ = tg.Check(ctx)

	done := make(chan State)
	go func() {
		s, _ := tg.Toggle(ctx)
		done <- s
	}()

	for tg.State() != Saving {
		runtime.Gosched()
	}
	if _, err := tg.Toggle(ctx); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := tg.Check(ctx); !errors.Is(err, ErrBusy) {
		t.Fatalf("check mid-flight must not race, got %v", err)
	}

	close(store.block)
	if s := <-done; s != Saved {
		t.Fatalf("expected Saved, got %v", s)
	}
}

func TestCheck_StaleReadDoesNotOverwriteToggle(t *testing.T) {
	ctx := context.Background()
	store := newFakeSavedStore()
	listingID := uuid.New()
	store.marks[listingID] = true
	tg := New(store, signedIn(), listingID)

	if s, err := tg.Check(ctx); err != nil || s != Saved {
		t.Fatalf("first check: %v %v", s, err)
	}

	store.mu.Lock()
	store.selected = make(chan struct{})
	store.release = make(chan struct{})
	store.mu.Unlock()

	done := make(chan State)
	go func() {
		s, _ := tg.Check(ctx)
		done <- s
	}()
	<-store.selected

	store.mu.Lock()
	release := store.release
	store.selected, store.release = nil, nil
	store.mu.Unlock()

	if s, err := tg.Toggle(ctx); err != nil || s != NotSaved {
		t.Fatalf("unsave: %v %v", s, err)
	}
	close(release)

	if s := <-done; s != NotSaved {
		t.Fatalf("late check must report the confirmed state, got %v", s)
	}
	if tg.State() != NotSaved {
		t.Fatalf("expected NotSaved, got %v", tg.State())
	}
	if n, _ := store.Count(ctx, uuid.Nil); n != 0 {
		t.Fatalf("expected zero marks, got %d", n)
	}
}
