package middleware

import (
	"errors"
	"strings"

	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/session"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxSessionKey = "session"
	CtxUserIDKey  = "user_id"

	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

type AuthMiddleware struct {
	sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Required rejects requests without a valid session.
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageAuthRequired, response.Redirect{Redirect: LoginPath}, nil)
		}

		sess, err := m.sessions.Resolve(c.Context(), token)
		if err != nil {
			return sessionError(err)
		}
		setSession(c, sess)
		return c.Next()
	}
}

// Optional attaches a session when a valid token is present and otherwise
// lets the request through anonymously. A token that is present but invalid
// is still rejected.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}

		sess, err := m.sessions.Resolve(c.Context(), token)
		if err != nil {
			return sessionError(err)
		}
		setSession(c, sess)
		return c.Next()
	}
}

// SessionFrom returns the request's session, or nil when anonymous.
func SessionFrom(c fiber.Ctx) *session.Session {
	sess, _ := c.Locals(CtxSessionKey).(*session.Session)
	return sess
}

func setSession(c fiber.Ctx, sess *session.Session) {
	c.Locals(CtxSessionKey, sess)
	c.Locals(CtxUserIDKey, sess.UserID)
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewAppError(fiber.StatusUnauthorized, "Token expired", response.Redirect{Redirect: LoginPath}, err)
	case errors.Is(err, session.ErrTokenRevoked), errors.Is(err, jwt.ErrTokenInvalid):
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", response.Redirect{Redirect: LoginPath}, err)
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
