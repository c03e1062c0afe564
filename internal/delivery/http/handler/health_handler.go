package handler

import (
	"context"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is satisfied by the database pool. A nil Pinger means the process
// runs on the in-memory store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := fiber.Map{"database": "memory"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return response.Error(c, fiber.StatusServiceUnavailable, "database unavailable", fiber.Map{"database": "down"})
		}
		data["database"] = "up"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
