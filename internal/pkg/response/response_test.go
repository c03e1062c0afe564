package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestDefaultMessage(t *testing.T) {
	cases := map[int]string{
		fiber.StatusOK:                  MessageOK,
		fiber.StatusCreated:             MessageCreated,
		fiber.StatusNotFound:            MessageNotFound,
		fiber.StatusServiceUnavailable:  MessageInternalServerError,
		fiber.StatusTeapot:              MessageError,
		fiber.StatusUnprocessableEntity: MessageUnprocessableEntity,
	}
	for status, want := range cases {
		if got := DefaultMessage(status); got != want {
			t.Errorf("DefaultMessage(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestCreated_Envelope(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c fiber.Ctx) error {
		return Created(c, fiber.Map{"id": "1"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var out SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated || out.Status != fiber.StatusCreated || out.Message != MessageCreated {
		t.Fatalf("unexpected envelope: %d %+v", resp.StatusCode, out)
	}
}

func TestError_InvalidStatusBecomes500(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		return Error(c, 42, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status %d", resp.StatusCode)
	}
}
