package routes

import (
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the API routes need.
type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Jobs      *handler.JobsHandler
	Editor    *handler.EditorHandler
	Saved     *handler.SavedHandler
	Dashboard *handler.DashboardHandler
	Health    *handler.HealthHandler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(h Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: h, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.handlers.Health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	h := r.handlers

	h.Auth.RegisterRoutes(v1.Group("/auth"))

	jobs := v1.Group("/jobs", r.auth.Optional())
	h.Jobs.RegisterRoutes(jobs)
	h.Saved.RegisterJobRoutes(jobs)
	h.Editor.RegisterRoutes(jobs)

	h.User.RegisterRoutes(v1.Group("/users", r.auth.Required()))
	h.Saved.RegisterUserRoutes(v1.Group("/me", r.auth.Required()))
	h.Dashboard.RegisterRoutes(v1.Group("/dashboard", r.auth.Required()))
}
