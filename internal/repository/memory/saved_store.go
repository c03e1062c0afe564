package memory

import (
	"context"
	"sort"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"

	"github.com/google/uuid"
)

type SavedStore struct {
	db *DB
}

func (s *SavedStore) SelectOne(ctx context.Context, userID, listingID uuid.UUID) (savedmark.SavedMark, bool, error) {
	if err := ctx.Err(); err != nil {
		return savedmark.SavedMark{}, false, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	m, ok := s.db.marks[markKey{user: userID, listing: listingID}]
	return m, ok, nil
}

func (s *SavedStore) Insert(ctx context.Context, userID, listingID uuid.UUID) (savedmark.SavedMark, error) {
	if err := ctx.Err(); err != nil {
		return savedmark.SavedMark{}, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[userID]; !ok {
		return savedmark.SavedMark{}, ErrForeignKey
	}
	if _, ok := s.db.listings[listingID]; !ok {
		return savedmark.SavedMark{}, savedmark.ErrListingNotFound
	}
	k := markKey{user: userID, listing: listingID}
	if _, ok := s.db.marks[k]; ok {
		return savedmark.SavedMark{}, savedmark.ErrDuplicate
	}

	m := savedmark.SavedMark{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: s.db.tick(),
	}
	s.db.marks[k] = m
	return m, nil
}

func (s *SavedStore) Delete(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	k := markKey{user: userID, listing: listingID}
	if _, ok := s.db.marks[k]; !ok {
		return false, nil
	}
	delete(s.db.marks, k)
	return true, nil
}

func (s *SavedStore) Listings(ctx context.Context, userID uuid.UUID) ([]listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	type saved struct {
		l listing.Listing
		m savedmark.SavedMark
	}
	rows := make([]saved, 0)
	for k, m := range s.db.marks {
		if k.user != userID {
			continue
		}
		if l, ok := s.db.listings[k.listing]; ok {
			rows = append(rows, saved{l: l, m: m})
		}
	}
	s.db.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.CreatedAt.Equal(rows[j].m.CreatedAt) {
			return rows[i].m.CreatedAt.After(rows[j].m.CreatedAt)
		}
		return rows[i].l.ID.String() > rows[j].l.ID.String()
	})

	out := make([]listing.Listing, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.l)
	}
	return out, nil
}

func (s *SavedStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	n := 0
	for k := range s.db.marks {
		if k.user == userID {
			n++
		}
	}
	return n, nil
}
