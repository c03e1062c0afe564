package seeder

import (
	"context"

	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/user"
)

// Target is what seeders write through. Seeding goes via the stores so it
// works for every STORE_DRIVER.
type Target struct {
	Users    user.Repository
	Listings listing.Store
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, t Target) error
}
