package main

import (
	"context"
	"flag"
	"log"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/seeder"
	"jobboard/internal/pkg/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	email := flag.String("email", "", "seed user email (default demo user)")
	password := flag.String("password", "", "seed user password")
	name := flag.String("name", "", "seed user full name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	seeders := seeder.Defaults()
	if *email != "" {
		seeders = []seeder.Seeder{seeder.SampleListingsSeeder{Email: *email, Password: *password, FullName: *name}}
	}

	var runErr error
	job := fx.New(
		fx.Supply(cfg),
		fx.Provide(app.NewLogger, app.NewStores),
		fx.WithLogger(func(l *logging.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap()}
		}),
		fx.Invoke(func(stores app.Stores, l *logging.Logger) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			r := seeder.Runner{Seeders: seeders, Log: l}
			runErr = r.Run(ctx, seeder.Target{Users: stores.Users, Listings: stores.Listings})
		}),
	)
	if err := job.Err(); err != nil {
		log.Fatalf("failed to build seeder: %v", err)
	}

	// Start registers the OnStop hooks so Stop closes the pool.
	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := job.Start(ctx); err != nil {
		log.Fatalf("failed to start seeder: %v", err)
	}
	if err := job.Stop(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if runErr != nil {
		log.Fatalf("seeding failed: %v", runErr)
	}
}
