package ws

import (
	"net/http"

	"jobboard/internal/filter"
	"jobboard/internal/pkg/logging"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub        *Hub
	newBrowser BrowserFactory
	log        *logging.Logger
}

func NewHandler(hub *Hub, newBrowser BrowserFactory, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{hub: hub, newBrowser: newBrowser, log: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/ws/jobs", h.HandleJobsWS)
}

func (h *Handler) HandleJobsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandler(h)(c)
}

// ServeHTTP upgrades the connection. The request's query string is the
// connection's initial filter.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.newBrowser, h.log)
	h.hub.Register(client)
	client.Start(filter.Decode(r.URL.RawQuery))
}
