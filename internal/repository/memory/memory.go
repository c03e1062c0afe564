// Package memory holds process-local implementations of the listing, saved
// mark and user stores. They follow the same constraints the Postgres schema
// enforces and back STORE_DRIVER=memory as well as the tests.
package memory

import (
	"errors"
	"sync"
	"time"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

// ErrForeignKey mirrors a foreign key violation: the referenced row does not exist.
var ErrForeignKey = errors.New("memory: referenced row does not exist")

type markKey struct {
	user    uuid.UUID
	listing uuid.UUID
}

// DB is the shared table set. Stores obtained from the same DB see each
// other's rows, so cascades and joins behave like the relational schema.
type DB struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	listings map[uuid.UUID]listing.Listing
	marks    map[markKey]savedmark.SavedMark

	now  func() time.Time
	last time.Time
}

func NewDB() *DB {
	return &DB{
		users:    map[uuid.UUID]user.User{},
		listings: map[uuid.UUID]listing.Listing{},
		marks:    map[markKey]savedmark.SavedMark{},
		now:      time.Now,
	}
}

func (db *DB) Listings() *ListingStore { return &ListingStore{db: db} }

func (db *DB) Saved() *SavedStore { return &SavedStore{db: db} }

func (db *DB) Users() *UserStore { return &UserStore{db: db} }

// tick returns a timestamp strictly after the previous one at microsecond
// precision. Callers hold mu.
func (db *DB) tick() time.Time {
	t := db.now().UTC().Truncate(time.Microsecond)
	if !t.After(db.last) {
		t = db.last.Add(time.Microsecond)
	}
	db.last = t
	return t
}

var (
	_ listing.Store   = (*ListingStore)(nil)
	_ savedmark.Store = (*SavedStore)(nil)
	_ user.Repository = (*UserStore)(nil)
)
