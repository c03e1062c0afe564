package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	useruc "jobboard/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc *useruc.Service
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
}

func NewUserHandler(uc *useruc.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	u, err := h.uc.GetMe(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(u))
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if req.FullName == nil {
		return badRequest(nil)
	}

	u, err := h.uc.UpdateMe(c.Context(), middleware.SessionFrom(c), useruc.UpdateMeInput{FullName: req.FullName})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserProfileResponse(u))
}
