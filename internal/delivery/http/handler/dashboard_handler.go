package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/dashboard"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	dashboard *dashboard.Service
}

func NewDashboardHandler(svc *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboard: svc}
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Overview)
}

func (h *DashboardHandler) Overview(c fiber.Ctx) error {
	o, err := h.dashboard.Overview(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardResponse(o))
}
