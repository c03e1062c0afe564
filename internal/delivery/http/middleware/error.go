package middleware

import (
	"errors"
	"fmt"

	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct {
	log *logging.Logger
}

func NewErrorMiddleware(log *logging.Logger) *ErrorMiddleware {
	if log == nil {
		log = logging.Nop()
	}
	return &ErrorMiddleware{log: log}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("panic recovered",
					"panic", fmt.Sprint(r),
					"method", c.Method(),
					"path", c.Path(),
				)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= fiber.StatusInternalServerError {
			m.logServerError(c, err)
		}
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) logServerError(c fiber.Ctx, err error) {
	kv := []any{
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(HeaderRequestID),
		"error", err.Error(),
	}
	var ae *apperr.Error
	if errors.As(err, &ae) && len(ae.Stack) > 0 {
		kv = append(kv, "stack", string(ae.Stack))
	}
	m.log.Error("request failed", kv...)
}

// normalizeError never leaks details of 5xx failures to the client.
func normalizeError(err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, appErr.Data
	}

	if apperr.KindOf(err) != "" {
		return normalizeError(FromAppErr(err, ""))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}

// FromAppErr converts a usecase error into its HTTP form. notFoundRedirect,
// when set, is sent along with NotFoundOrForbidden so the client can leave
// the page without learning whether the resource exists.
func FromAppErr(err error, notFoundRedirect string) *AppError {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fiber.Map{"fields": apperr.FieldsOf(err)}, err)
	case apperr.KindInvalidInput:
		return NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	case apperr.KindAuthRequired:
		return NewAppError(fiber.StatusUnauthorized, response.MessageAuthRequired, response.Redirect{Redirect: LoginPath}, err)
	case apperr.KindUnauthorized:
		return NewAppError(fiber.StatusUnauthorized, appMessage(err, response.MessageUnauthorized), nil, err)
	case apperr.KindNotFoundOrForbidden:
		var data any
		if notFoundRedirect != "" {
			data = response.Redirect{Redirect: notFoundRedirect}
		}
		return NewAppError(fiber.StatusNotFound, response.MessageNotFound, data, err)
	case apperr.KindConflict:
		return NewAppError(fiber.StatusConflict, appMessage(err, response.MessageConflict), nil, err)
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func appMessage(err error, fallback string) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
