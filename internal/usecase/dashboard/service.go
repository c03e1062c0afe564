package dashboard

import (
	"context"
	"time"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/session"
)

type Stats struct {
	TotalPosted       int
	PostedThisMonth   int
	DistinctLocations int
	SavedCount        int
}

type Overview struct {
	Posted []listing.Listing
	Saved  []listing.Listing
	Stats  Stats
}

type Service struct {
	listings listing.Store
	saved    savedmark.Store
	now      func() time.Time
}

func NewService(listings listing.Store, saved savedmark.Store) *Service {
	return &Service{listings: listings, saved: saved, now: time.Now}
}

// Overview gathers the owner's listings, newest first, their saved listings
// and summary counts.
func (s *Service) Overview(ctx context.Context, sess *session.Session) (Overview, error) {
	userID, ok := sess.Identity()
	if !ok {
		return Overview{}, apperr.AuthRequired()
	}

	posted, err := s.listings.Select(ctx, listing.ByOwner(userID), 0)
	if err != nil {
		return Overview{}, apperr.Store("failed to load posted listings", err)
	}
	saved, err := s.saved.Listings(ctx, userID)
	if err != nil {
		return Overview{}, apperr.Store("failed to load saved listings", err)
	}

	return Overview{
		Posted: posted,
		Saved:  saved,
		Stats:  summarize(posted, len(saved), s.now()),
	}, nil
}

func summarize(posted []listing.Listing, savedCount int, now time.Time) Stats {
	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	locations := map[string]struct{}{}
	st := Stats{TotalPosted: len(posted), SavedCount: savedCount}
	for _, l := range posted {
		if !l.CreatedAt.Before(monthStart) {
			st.PostedThisMonth++
		}
		locations[l.Location] = struct{}{}
	}
	st.DistinctLocations = len(locations)
	return st
}
