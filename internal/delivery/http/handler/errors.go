package handler

import (
	"errors"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase/savetoggle"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func mapUsecaseError(err error) error {
	return mapUsecaseErrorRedirect(err, "")
}

// mapUsecaseErrorRedirect is used by owner-scoped routes: a missing or foreign
// listing sends the client back to redirect.
func mapUsecaseErrorRedirect(err error, redirect string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, savetoggle.ErrNotReady):
		return middleware.NewAppError(fiber.StatusConflict, "Save status is still loading", nil, err)
	case errors.Is(err, savetoggle.ErrBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Save is already in progress", nil, err)
	}
	return middleware.FromAppErr(err, redirect)
}

// parseListingID treats a malformed id like a missing listing.
func parseListingID(c fiber.Ctx, redirect string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		var data any
		if redirect != "" {
			data = response.Redirect{Redirect: redirect}
		}
		return uuid.Nil, middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, data, err)
	}
	return id, nil
}

func badRequest(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
}
