package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/editor"

	"github.com/gofiber/fiber/v3"
)

// EditorHandler serves owner-only listing routes. A listing that is missing
// and one owned by someone else produce the same 404 with a redirect to the
// dashboard.
type EditorHandler struct {
	editor *editor.Editor
}

func NewEditorHandler(ed *editor.Editor) *EditorHandler {
	return &EditorHandler{editor: ed}
}

func (h *EditorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id/edit", h.Load)
	r.Put("/:id", h.Submit)
	r.Delete("/:id", h.Delete)
}

func (h *EditorHandler) Load(c fiber.Ctx) error {
	id, err := parseListingID(c, middleware.DashboardPath)
	if err != nil {
		return err
	}

	l, err := h.editor.Load(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		return mapUsecaseErrorRedirect(err, middleware.DashboardPath)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListingResponse(l))
}

func (h *EditorHandler) Submit(c fiber.Ctx) error {
	id, err := parseListingID(c, middleware.DashboardPath)
	if err != nil {
		return err
	}

	var req dto.ListingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	l, err := h.editor.Submit(c.Context(), middleware.SessionFrom(c), id, req.Fields())
	if err != nil {
		return mapUsecaseErrorRedirect(err, middleware.DashboardPath)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListingResponse(l))
}

func (h *EditorHandler) Delete(c fiber.Ctx) error {
	id, err := parseListingID(c, middleware.DashboardPath)
	if err != nil {
		return err
	}

	if err := h.editor.Delete(c.Context(), middleware.SessionFrom(c), id); err != nil {
		return mapUsecaseErrorRedirect(err, middleware.DashboardPath)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, response.Redirect{Redirect: middleware.DashboardPath})
}
