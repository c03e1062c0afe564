// Package saved serves save/unsave requests. Each request drives a fresh
// savetoggle.Toggle for its (user, listing) pair.
package saved

import (
	"context"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/session"
	"jobboard/internal/usecase/savetoggle"

	"github.com/google/uuid"
)

type Service struct {
	store savedmark.Store
	log   *logging.Logger
}

func NewService(store savedmark.Store, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{store: store, log: log}
}

// Status reports whether the session has saved the listing. Anonymous callers
// always get false.
func (s *Service) Status(ctx context.Context, sess *session.Session, listingID uuid.UUID) (savetoggle.State, error) {
	return savetoggle.New(s.store, sess, listingID).Check(ctx)
}

// Toggle resolves the current status first, then flips it.
func (s *Service) Toggle(ctx context.Context, sess *session.Session, listingID uuid.UUID) (savetoggle.State, error) {
	t := savetoggle.New(s.store, sess, listingID)
	if _, ok := sess.Identity(); !ok {
		return t.Toggle(ctx)
	}
	if _, err := t.Check(ctx); err != nil {
		return t.State(), err
	}
	state, err := t.Toggle(ctx)
	s.logResult(sess, listingID, state, err)
	return state, err
}

func (s *Service) Save(ctx context.Context, sess *session.Session, listingID uuid.UUID) (savetoggle.State, error) {
	state, err := savetoggle.New(s.store, sess, listingID).Save(ctx)
	s.logResult(sess, listingID, state, err)
	return state, err
}

func (s *Service) Unsave(ctx context.Context, sess *session.Session, listingID uuid.UUID) (savetoggle.State, error) {
	state, err := savetoggle.New(s.store, sess, listingID).Unsave(ctx)
	s.logResult(sess, listingID, state, err)
	return state, err
}

// List returns the session's saved listings, most recently saved first.
func (s *Service) List(ctx context.Context, sess *session.Session) ([]listing.Listing, error) {
	userID, ok := sess.Identity()
	if !ok {
		return nil, apperr.AuthRequired()
	}
	items, err := s.store.Listings(ctx, userID)
	if err != nil {
		return nil, apperr.Store("failed to load saved listings", err)
	}
	return items, nil
}

func (s *Service) logResult(sess *session.Session, listingID uuid.UUID, state savetoggle.State, err error) {
	userID, _ := sess.Identity()
	if err != nil {
		s.log.Debug("save toggle failed", "user_id", userID, "listing_id", listingID, "error", err)
		return
	}
	s.log.Debug("save toggle", "user_id", userID, "listing_id", listingID, "state", state.String())
}
