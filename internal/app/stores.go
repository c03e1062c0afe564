package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/repository"
	"jobboard/internal/repository/memory"
	"jobboard/migrations"

	"go.uber.org/fx"
)

// Stores are the three tables the usecases work against. Pinger is nil for
// the in-memory driver.
type Stores struct {
	Listings listing.Store
	Saved    savedmark.Store
	Users    user.Repository
	Pinger   handler.Pinger
}

// NewStores opens the configured driver. For postgres the pool is connected
// and migrated before the first request is served.
func NewStores(lc fx.Lifecycle, cfg config.Config, log *logging.Logger) (Stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store; data is lost on exit")
		db := memory.NewDB()
		return Stores{Listings: db.Listings(), Saved: db.Saved(), Users: db.Users()}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := dbpostgres.Connect(ctx, cfg.Database, log)
	if err != nil {
		return Stores{}, fmt.Errorf("connect database: %w", err)
	}

	r := migration.Runner{Source: migrationSource(cfg.App.MigrationsDir), Log: log}
	if err := r.Run(ctx, pool); err != nil {
		_ = pool.Close()
		return Stores{}, fmt.Errorf("run migrations: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return pool.Close()
		},
	})

	return Stores{
		Listings: repository.NewPostgresListingRepository(pool),
		Saved:    repository.NewPostgresSavedRepository(pool),
		Users:    repository.NewPostgresUserRepository(pool),
		Pinger:   pool,
	}, nil
}

// migrationSource prefers an on-disk directory so migrations can be shipped
// separately, and falls back to the files compiled into the binary.
func migrationSource(dir string) fs.FS {
	if dir != "" {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			return os.DirFS(dir)
		}
	}
	return migrations.FS
}
