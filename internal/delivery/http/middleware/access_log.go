package middleware

import (
	"time"

	"jobboard/internal/pkg/logging"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	log *logging.Logger
}

func NewAccessLogMiddleware(log *logging.Logger) *AccessLogMiddleware {
	if log == nil {
		log = logging.Nop()
	}
	return &AccessLogMiddleware{log: log}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		m.log.Info("http access",
			"request_id", rid,
			"ip", c.IP(),
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
			"resp_bytes", len(c.Response().Body()),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		)

		return err
	}
}
