package main

import (
	"context"
	"log"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/pkg/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	server := fx.New(
		fx.Supply(cfg),
		app.Module,
		fx.WithLogger(func(l *logging.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap()}
		}),
	)

	if err := server.Start(context.Background()); err != nil {
		log.Fatal(err)
	}

	<-server.Done()

	ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Fatal(err)
	}
}
