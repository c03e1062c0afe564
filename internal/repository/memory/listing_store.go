package memory

import (
	"context"
	"sort"

	"jobboard/internal/domain/listing"

	"github.com/google/uuid"
)

type ListingStore struct {
	db *DB
}

func (s *ListingStore) Select(ctx context.Context, p listing.Predicate, limit int) ([]listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	out := make([]listing.Listing, 0)
	for _, l := range s.db.listings {
		if p.Matches(l) {
			out = append(out, l)
		}
	}
	s.db.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return listing.NewestFirst(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *ListingStore) SelectOne(ctx context.Context, p listing.Predicate) (listing.Listing, error) {
	out, err := s.Select(ctx, p, 1)
	if err != nil {
		return listing.Listing{}, err
	}
	if len(out) == 0 {
		return listing.Listing{}, listing.ErrNotFound
	}
	return out[0], nil
}

func (s *ListingStore) Insert(ctx context.Context, owner uuid.UUID, f listing.Fields) (listing.Listing, error) {
	if err := ctx.Err(); err != nil {
		return listing.Listing{}, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[owner]; !ok {
		return listing.Listing{}, ErrForeignKey
	}
	if !f.Category.Valid() {
		return listing.Listing{}, listing.ErrInvalidCategory
	}

	now := s.db.tick()
	l := listing.Listing{
		ID:          uuid.New(),
		Title:       f.Title,
		Company:     f.Company,
		Description: f.Description,
		Location:    f.Location,
		Category:    f.Category,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.db.listings[l.ID] = l
	return l, nil
}

func (s *ListingStore) Update(ctx context.Context, p listing.Predicate, f listing.Fields) (int64, error) {
	if p.ID == nil {
		return 0, listing.ErrUnscopedMutation
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	l, ok := s.db.listings[*p.ID]
	if !ok || !p.Matches(l) {
		return 0, nil
	}
	if !f.Category.Valid() {
		return 0, listing.ErrInvalidCategory
	}
	l.Title = f.Title
	l.Company = f.Company
	l.Description = f.Description
	l.Location = f.Location
	l.Category = f.Category
	l.UpdatedAt = s.db.tick()
	s.db.listings[l.ID] = l
	return 1, nil
}

// Delete removes the listing and, like ON DELETE CASCADE, every saved mark
// pointing at it.
func (s *ListingStore) Delete(ctx context.Context, p listing.Predicate) (int64, error) {
	if p.ID == nil {
		return 0, listing.ErrUnscopedMutation
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	l, ok := s.db.listings[*p.ID]
	if !ok || !p.Matches(l) {
		return 0, nil
	}
	delete(s.db.listings, l.ID)
	for k := range s.db.marks {
		if k.listing == l.ID {
			delete(s.db.marks, k)
		}
	}
	return 1, nil
}

func (s *ListingStore) Locations(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.db.mu.RLock()
	seen := map[string]struct{}{}
	for _, l := range s.db.listings {
		seen[l.Location] = struct{}{}
	}
	s.db.mu.RUnlock()

	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out, nil
}
