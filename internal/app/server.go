package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
)

func NewFiber(cfg config.Config, log *logging.Logger, registry *routes.Registry, wsHandler *ws.Handler) *fiber.App {
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, log)
	registry.Register(f)
	wsHandler.RegisterRoutes(f)

	return f
}

func registerGlobalMiddleware(app *fiber.App, log *logging.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log).Middleware())
	app.Use(middleware.NewErrorMiddleware(log).Middleware())
}

// RegisterServer starts listening once every provider is built and shuts the
// server down before the stores are closed.
func RegisterServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, f *fiber.App, cfg config.Config, log *logging.Logger) error {
	addr, err := ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", "addr", addr)
				if err := f.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("http server stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("http server shutting down")
			return f.ShutdownWithContext(ctx)
		},
	})
	return nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
