package listing

import (
	"strings"

	"github.com/google/uuid"
)

// Predicate selects listings. Zero-valued attributes impose no constraint, so
// the zero Predicate matches every listing. Stores evaluate a predicate in a
// single statement.
type Predicate struct {
	ID      *uuid.UUID
	OwnerID *uuid.UUID

	// Query is matched case-insensitively as a substring of title OR company.
	Query string
	// Location is matched case-insensitively as a substring of location.
	Location string
	// Category is matched exactly.
	Category Category
}

func ByID(id uuid.UUID) Predicate {
	return Predicate{ID: &id}
}

func ByOwner(owner uuid.UUID) Predicate {
	return Predicate{OwnerID: &owner}
}

// Owned conjoins identifier and owner equality.
func Owned(id, owner uuid.UUID) Predicate {
	return Predicate{ID: &id, OwnerID: &owner}
}

func (p Predicate) IsEmpty() bool {
	return p.ID == nil && p.OwnerID == nil && p.Query == "" && p.Location == "" && p.Category == ""
}

func (p Predicate) Matches(l Listing) bool {
	if p.ID != nil && l.ID != *p.ID {
		return false
	}
	if p.OwnerID != nil && l.OwnerID != *p.OwnerID {
		return false
	}
	if p.Query != "" {
		q := strings.ToLower(p.Query)
		if !strings.Contains(strings.ToLower(l.Title), q) && !strings.Contains(strings.ToLower(l.Company), q) {
			return false
		}
	}
	if p.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(p.Location)) {
		return false
	}
	if p.Category != "" && l.Category != p.Category {
		return false
	}
	return true
}

// NewestFirst reports whether a sorts before b in browse order. Creation-time
// ties break by id descending so results are stable across stores.
func NewestFirst(a, b Listing) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
