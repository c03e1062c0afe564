package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/filter"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/editor"
	uclisting "jobboard/internal/usecase/listing"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	listings *uclisting.Service
	editor   *editor.Editor
}

func NewJobsHandler(listings *uclisting.Service, ed *editor.Editor) *JobsHandler {
	return &JobsHandler{listings: listings, editor: ed}
}

// RegisterRoutes expects r to run the optional auth middleware. Browse,
// locations and detail are public; create and apply report AuthRequired
// without a session.
func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Browse)
	r.Get("/locations", h.Locations)
	r.Post("/", h.Create)
	r.Get("/:id", h.Detail)
	r.Get("/:id/apply", h.Apply)
}

// Browse runs one browse cycle for the filter in the query string. The
// canonical location is echoed in Content-Location.
func (h *JobsHandler) Browse(c fiber.Ctx) error {
	state := filter.Decode(string(c.Request().URI().QueryString()))

	snap, err := h.listings.Browse(c.Context(), state)
	if err != nil {
		return mapUsecaseError(err)
	}

	c.Set(fiber.HeaderContentLocation, snap.Location)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBrowseResponse(snap))
}

func (h *JobsHandler) Locations(c fiber.Ctx) error {
	locs, err := h.listings.Locations(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	if locs == nil {
		locs = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, locs)
}

func (h *JobsHandler) Detail(c fiber.Ctx) error {
	id, err := parseListingID(c, "")
	if err != nil {
		return err
	}

	l, err := h.listings.Detail(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewListingResponse(l))
}

func (h *JobsHandler) Apply(c fiber.Ctx) error {
	id, err := parseListingID(c, "")
	if err != nil {
		return err
	}

	link, err := h.listings.ApplyLink(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ApplyResponse{Mailto: link})
}

func (h *JobsHandler) Create(c fiber.Ctx) error {
	var req dto.ListingRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	l, err := h.editor.Create(c.Context(), middleware.SessionFrom(c), req.Fields())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewListingResponse(l))
}
