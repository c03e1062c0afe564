package savedmark

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/listing"

	"github.com/google/uuid"
)

var (
	// ErrDuplicate is returned by Insert when the (user, listing) pair is already saved.
	ErrDuplicate = errors.New("listing already saved")
	// ErrListingNotFound is returned by Insert when the listing does not exist.
	ErrListingNotFound = errors.New("saved listing not found")
)

type SavedMark struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ListingID uuid.UUID
	CreatedAt time.Time
}

// Store is the durable (user, listing) table. It guarantees at most one mark
// per pair.
type Store interface {
	// SelectOne returns (mark, true) when the pair is saved.
	SelectOne(ctx context.Context, userID, listingID uuid.UUID) (SavedMark, bool, error)
	Insert(ctx context.Context, userID, listingID uuid.UUID) (SavedMark, error)
	// Delete reports whether a mark was removed.
	Delete(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	// Listings returns the user's saved listings, most recently saved first.
	Listings(ctx context.Context, userID uuid.UUID) ([]listing.Listing, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
}
