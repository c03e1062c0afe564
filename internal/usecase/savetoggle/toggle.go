// Package savetoggle is the save/unsave state machine for one (user, listing)
// pair. Local state only changes once the store has confirmed.
package savetoggle

import (
	"context"
	"errors"
	"sync"

	"jobboard/internal/domain/savedmark"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/session"

	"github.com/google/uuid"
)

var (
	// ErrNotReady is returned by Toggle before Check has resolved the status.
	ErrNotReady = errors.New("savetoggle: status not checked yet")
	// ErrBusy is returned while a save or unsave is in flight.
	ErrBusy = errors.New("savetoggle: operation in flight")
)

type State int

const (
	CheckingStatus State = iota
	NotSaved
	Saving
	Saved
	Unsaving
)

func (s State) String() string {
	switch s {
	case NotSaved:
		return "not_saved"
	case Saving:
		return "saving"
	case Saved:
		return "saved"
	case Unsaving:
		return "unsaving"
	default:
		return "checking_status"
	}
}

func (s State) IsSaved() bool {
	return s == Saved
}

type Toggle struct {
	store     savedmark.Store
	sess      *session.Session
	listingID uuid.UUID

	mu    sync.Mutex
	state State
	// gen advances on every mutation so a Check that read the store
	// before the mutation cannot overwrite its outcome.
	gen uint64
}

func New(store savedmark.Store, sess *session.Session, listingID uuid.UUID) *Toggle {
	return &Toggle{store: store, sess: sess, listingID: listingID, state: CheckingStatus}
}

func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Check asks the store whether the pair is saved. Without a session the
// answer is NotSaved and the store is not consulted.
func (t *Toggle) Check(ctx context.Context) (State, error) {
	t.mu.Lock()
	if t.state == Saving || t.state == Unsaving {
		t.mu.Unlock()
		return t.state, ErrBusy
	}
	gen := t.gen
	t.mu.Unlock()

	userID, ok := t.sess.Identity()
	if !ok {
		return t.resolve(NotSaved, gen), nil
	}

	_, saved, err := t.store.SelectOne(ctx, userID, t.listingID)
	if err != nil {
		return t.State(), apperr.Store("failed to check saved status", err)
	}
	if saved {
		return t.resolve(Saved, gen), nil
	}
	return t.resolve(NotSaved, gen), nil
}

// resolve records a checked status unless a mutation started after the
// check read the store.
func (t *Toggle) resolve(s State, gen uint64) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen != gen || t.state == Saving || t.state == Unsaving {
		return t.state
	}
	t.state = s
	return s
}

// Toggle flips the confirmed state. A failed store call restores the prior
// confirmed state.
func (t *Toggle) Toggle(ctx context.Context) (State, error) {
	userID, ok := t.sess.Identity()
	if !ok {
		return t.State(), apperr.AuthRequired()
	}

	t.mu.Lock()
	prior := t.state
	switch prior {
	case CheckingStatus:
		t.mu.Unlock()
		return prior, ErrNotReady
	case Saving, Unsaving:
		t.mu.Unlock()
		return prior, ErrBusy
	case NotSaved:
		t.state = Saving
	case Saved:
		t.state = Unsaving
	}
	t.gen++
	t.mu.Unlock()

	var next State
	var err error
	if prior == NotSaved {
		next, err = t.save(ctx, userID)
	} else {
		next, err = t.unsave(ctx, userID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.state = prior
		return prior, err
	}
	t.state = next
	return next, nil
}

// Save moves to Saved, doing nothing when already there.
func (t *Toggle) Save(ctx context.Context) (State, error) {
	return t.moveTo(ctx, Saved)
}

// Unsave moves to NotSaved, doing nothing when already there.
func (t *Toggle) Unsave(ctx context.Context) (State, error) {
	return t.moveTo(ctx, NotSaved)
}

func (t *Toggle) moveTo(ctx context.Context, want State) (State, error) {
	if _, ok := t.sess.Identity(); !ok {
		return t.State(), apperr.AuthRequired()
	}
	if t.State() == CheckingStatus {
		if _, err := t.Check(ctx); err != nil {
			return t.State(), err
		}
	}
	if s := t.State(); s == want {
		return s, nil
	}
	return t.Toggle(ctx)
}

func (t *Toggle) save(ctx context.Context, userID uuid.UUID) (State, error) {
	_, err := t.store.Insert(ctx, userID, t.listingID)
	switch {
	case err == nil, errors.Is(err, savedmark.ErrDuplicate):
		return Saved, nil
	case errors.Is(err, savedmark.ErrListingNotFound):
		return NotSaved, apperr.NotFoundOrForbidden()
	default:
		return NotSaved, apperr.Store("failed to save listing", err)
	}
}

func (t *Toggle) unsave(ctx context.Context, userID uuid.UUID) (State, error) {
	if _, err := t.store.Delete(ctx, userID, t.listingID); err != nil {
		return Saved, apperr.Store("failed to unsave listing", err)
	}
	return NotSaved, nil
}
