// Package app wires the job board together with fx.
package app

import (
	"context"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/session"
	ucauth "jobboard/internal/usecase/auth"
	"jobboard/internal/usecase/browser"
	"jobboard/internal/usecase/dashboard"
	"jobboard/internal/usecase/editor"
	uclisting "jobboard/internal/usecase/listing"
	"jobboard/internal/usecase/saved"
	useruc "jobboard/internal/usecase/user"
	"jobboard/internal/ws"

	"go.uber.org/fx"
)

const browsePath = "/jobs"

var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewStores,
		NewRevocations,
		NewJWT,
		session.NewManager,
		middleware.NewAuthMiddleware,
		NewHub,
		NewEditor,
		NewListingService,
		NewSavedService,
		NewDashboardService,
		NewAuthService,
		NewUserService,
		NewHandlers,
		routes.NewRegistry,
		NewWSHandler,
		NewFiber,
	),
	fx.Invoke(RegisterServer),
)

func NewLogger(lc fx.Lifecycle, cfg config.Config) *logging.Logger {
	log := logging.New(cfg.App.LogLevel).With("app", cfg.App.AppName, "env", cfg.App.Environment)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			return nil
		},
	})
	return log
}

// NewRevocations uses Redis when REDIS_URL is set and reachable; otherwise
// sign-outs are kept in process.
func NewRevocations(lc fx.Lifecycle, cfg config.Config, log *logging.Logger) session.Revocations {
	r := session.NewRedisRevocations(context.Background(), cfg.Redis.URL, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return r.Close()
		},
	})
	return r
}

func NewJWT(cfg config.Config) jwt.Service {
	return jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
}

func NewHub(lc fx.Lifecycle, log *logging.Logger) *ws.Hub {
	hub := ws.NewHub(log)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

func NewEditor(stores Stores, hub *ws.Hub, log *logging.Logger) *editor.Editor {
	return editor.New(stores.Listings, hub, log)
}

func NewListingService(cfg config.Config, stores Stores, log *logging.Logger) *uclisting.Service {
	var opts []browser.Option
	if cfg.App.BrowseLimit > 0 {
		opts = append(opts, browser.WithLimit(cfg.App.BrowseLimit))
	}
	return uclisting.NewService(stores.Listings, browsePath, log, opts...)
}

func NewSavedService(stores Stores, log *logging.Logger) *saved.Service {
	return saved.NewService(stores.Saved, log)
}

func NewDashboardService(stores Stores) *dashboard.Service {
	return dashboard.NewService(stores.Listings, stores.Saved)
}

func NewUserService(stores Stores) *useruc.Service {
	return useruc.NewService(stores.Users)
}

func NewAuthService(stores Stores, jwtSvc jwt.Service, sessions *session.Manager, log *logging.Logger) *ucauth.Service {
	return ucauth.NewService(stores.Users, jwtSvc, sessions, log)
}

func NewHandlers(
	stores Stores,
	auth *ucauth.Service,
	users *useruc.Service,
	listings *uclisting.Service,
	ed *editor.Editor,
	savedSvc *saved.Service,
	dash *dashboard.Service,
	authMw *middleware.AuthMiddleware,
) routes.Handlers {
	return routes.Handlers{
		Auth:      handler.NewAuthHandler(auth, authMw),
		User:      handler.NewUserHandler(users),
		Jobs:      handler.NewJobsHandler(listings, ed),
		Editor:    handler.NewEditorHandler(ed),
		Saved:     handler.NewSavedHandler(savedSvc),
		Dashboard: handler.NewDashboardHandler(dash),
		Health:    handler.NewHealthHandler(stores.Pinger),
	}
}

func NewWSHandler(hub *ws.Hub, listings *uclisting.Service, log *logging.Logger) *ws.Handler {
	return ws.NewHandler(hub, listings.NewBrowser, log)
}
