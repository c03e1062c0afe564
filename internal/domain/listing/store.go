package listing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("listing not found")
	// ErrUnscopedMutation is returned when Update or Delete is called without
	// an identifier in the predicate.
	ErrUnscopedMutation = errors.New("listing mutation requires an id predicate")
	// ErrInvalidCategory is returned when the store's job type constraint
	// rejects a write.
	ErrInvalidCategory = errors.New("listing job type rejected by store")
)

// Store is the durable table of job postings. It owns identity and timestamps.
type Store interface {
	// Select returns matching listings newest first. limit <= 0 means no limit.
	Select(ctx context.Context, p Predicate, limit int) ([]Listing, error)
	// SelectOne returns ErrNotFound when nothing matches.
	SelectOne(ctx context.Context, p Predicate) (Listing, error)
	Insert(ctx context.Context, owner uuid.UUID, f Fields) (Listing, error)
	// Update and Delete report the number of affected rows.
	Update(ctx context.Context, p Predicate, f Fields) (int64, error)
	Delete(ctx context.Context, p Predicate) (int64, error)
	// Locations returns the distinct locations currently present, sorted.
	Locations(ctx context.Context) ([]string, error)
}
