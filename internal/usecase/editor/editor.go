// Package editor is the owner-only side of listings. Every read and write
// conjoins the listing id with the caller's identity in one store call, so a
// foreign listing and a missing one look the same.
package editor

import (
	"context"
	"errors"

	"jobboard/internal/domain/listing"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/session"

	"github.com/google/uuid"
)

// Notifier is told after a listing was created, changed or removed.
type Notifier interface {
	ListingsChanged()
}

type Editor struct {
	listings listing.Store
	notifier Notifier
	log      *logging.Logger
}

func New(listings listing.Store, notifier Notifier, log *logging.Logger) *Editor {
	if log == nil {
		log = logging.Nop()
	}
	return &Editor{listings: listings, notifier: notifier, log: log}
}

// Create validates f and inserts it owned by the session identity.
func (e *Editor) Create(ctx context.Context, sess *session.Session, f listing.Fields) (listing.Listing, error) {
	owner, ok := sess.Identity()
	if !ok {
		return listing.Listing{}, apperr.AuthRequired()
	}
	if err := listing.Validate(f); err != nil {
		return listing.Listing{}, err
	}

	l, err := e.listings.Insert(ctx, owner, f)
	if err != nil {
		if errors.Is(err, listing.ErrInvalidCategory) {
			return listing.Listing{}, listing.InvalidCategory()
		}
		return listing.Listing{}, apperr.Store("failed to create listing", err)
	}

	e.log.Info("listing created", "listing_id", l.ID, "owner_id", owner)
	e.changed()
	return l, nil
}

func (e *Editor) Load(ctx context.Context, sess *session.Session, id uuid.UUID) (listing.Listing, error) {
	owner, ok := sess.Identity()
	if !ok {
		return listing.Listing{}, apperr.AuthRequired()
	}

	l, err := e.listings.SelectOne(ctx, listing.Owned(id, owner))
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return listing.Listing{}, apperr.NotFoundOrForbidden()
		}
		return listing.Listing{}, apperr.Store("failed to load listing", err)
	}
	return l, nil
}

// Submit validates f, then updates under the same owner-scoped predicate as
// Load. Ownership is re-checked by the update itself, not by a prior read.
func (e *Editor) Submit(ctx context.Context, sess *session.Session, id uuid.UUID, f listing.Fields) (listing.Listing, error) {
	owner, ok := sess.Identity()
	if !ok {
		return listing.Listing{}, apperr.AuthRequired()
	}
	if err := listing.Validate(f); err != nil {
		return listing.Listing{}, err
	}

	n, err := e.listings.Update(ctx, listing.Owned(id, owner), f)
	if err != nil {
		if errors.Is(err, listing.ErrInvalidCategory) {
			return listing.Listing{}, listing.InvalidCategory()
		}
		return listing.Listing{}, apperr.Store("failed to update listing", err)
	}
	if n == 0 {
		return listing.Listing{}, apperr.NotFoundOrForbidden()
	}

	e.log.Info("listing updated", "listing_id", id, "owner_id", owner)
	e.changed()
	return e.Load(ctx, sess, id)
}

func (e *Editor) Delete(ctx context.Context, sess *session.Session, id uuid.UUID) error {
	owner, ok := sess.Identity()
	if !ok {
		return apperr.AuthRequired()
	}

	n, err := e.listings.Delete(ctx, listing.Owned(id, owner))
	if err != nil {
		return apperr.Store("failed to delete listing", err)
	}
	if n == 0 {
		return apperr.NotFoundOrForbidden()
	}

	e.log.Info("listing deleted", "listing_id", id, "owner_id", owner)
	e.changed()
	return nil
}

func (e *Editor) changed() {
	if e.notifier != nil {
		e.notifier.ListingsChanged()
	}
}
