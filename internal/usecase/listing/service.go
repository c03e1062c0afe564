// Package listing serves the public, unscoped side of listings: browse,
// detail and the locations facet. Apply links need a session.
package listing

import (
	"context"
	"errors"

	domain "jobboard/internal/domain/listing"
	"jobboard/internal/filter"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/session"
	"jobboard/internal/usecase/browser"

	"github.com/google/uuid"
)

type Service struct {
	listings domain.Store
	basePath string
	log      *logging.Logger
	// opts apply to every browser the service creates.
	opts []browser.Option
}

func NewService(listings domain.Store, basePath string, log *logging.Logger, opts ...browser.Option) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{listings: listings, basePath: basePath, log: log, opts: opts}
}

// Browse runs a single browser cycle for f.
func (s *Service) Browse(ctx context.Context, f filter.State) (browser.Snapshot, error) {
	return s.NewBrowser().Apply(ctx, f)
}

// NewBrowser returns a long-lived browser for a live session.
func (s *Service) NewBrowser(opts ...browser.Option) *browser.Browser {
	all := []browser.Option{browser.WithBasePath(s.basePath), browser.WithLogger(s.log)}
	all = append(all, s.opts...)
	return browser.New(s.listings, append(all, opts...)...)
}

// Detail is public: any listing may be read by anyone.
func (s *Service) Detail(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	l, err := s.listings.SelectOne(ctx, domain.ByID(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Listing{}, apperr.NotFoundOrForbidden()
		}
		return domain.Listing{}, apperr.Store("failed to load listing", err)
	}
	return l, nil
}

func (s *Service) Locations(ctx context.Context) ([]string, error) {
	locs, err := s.listings.Locations(ctx)
	if err != nil {
		return nil, apperr.Store("failed to load locations", err)
	}
	return locs, nil
}

// ApplyLink returns the mailto link for applying to a listing as the session user.
func (s *Service) ApplyLink(ctx context.Context, sess *session.Session, id uuid.UUID) (string, error) {
	if _, ok := sess.Identity(); !ok {
		return "", apperr.AuthRequired()
	}
	l, err := s.Detail(ctx, id)
	if err != nil {
		return "", err
	}
	return domain.ApplyLink(l, sess.Email), nil
}
