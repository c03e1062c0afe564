package handler

import (
	"context"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/session"
	"jobboard/internal/usecase/saved"
	"jobboard/internal/usecase/savetoggle"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SavedHandler struct {
	saved *saved.Service
}

func NewSavedHandler(svc *saved.Service) *SavedHandler {
	return &SavedHandler{saved: svc}
}

// RegisterJobRoutes mounts the per-listing save routes. They run behind the
// optional auth middleware: status is answered for anonymous callers, while
// mutations report AuthRequired.
func (h *SavedHandler) RegisterJobRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/save", h.Status)
	r.Post("/:id/save/toggle", h.Toggle)
	r.Put("/:id/save", h.Save)
	r.Delete("/:id/save", h.Unsave)
}

func (h *SavedHandler) RegisterUserRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/saved", h.List)
}

func (h *SavedHandler) Status(c fiber.Ctx) error {
	return h.run(c, h.saved.Status)
}

func (h *SavedHandler) Toggle(c fiber.Ctx) error {
	return h.run(c, h.saved.Toggle)
}

func (h *SavedHandler) Save(c fiber.Ctx) error {
	return h.run(c, h.saved.Save)
}

func (h *SavedHandler) Unsave(c fiber.Ctx) error {
	return h.run(c, h.saved.Unsave)
}

func (h *SavedHandler) List(c fiber.Ctx) error {
	items, err := h.saved.List(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListingResponses(items))
}

type savedOp func(ctx context.Context, sess *session.Session, listingID uuid.UUID) (savetoggle.State, error)

func (h *SavedHandler) run(c fiber.Ctx, op savedOp) error {
	id, err := parseListingID(c, "")
	if err != nil {
		return err
	}

	state, err := op(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SaveStatusResponse{JobID: id, Saved: state.IsSaved()})
}
