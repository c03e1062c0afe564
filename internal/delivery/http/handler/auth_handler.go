package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	ucauth "jobboard/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	auth *ucauth.Service
	mw   *middleware.AuthMiddleware
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(auth *ucauth.Service, mw *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth, mw: mw}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", h.mw.Required(), h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.auth.Register(c.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, authResponse(usr, tokens))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	usr, tokens, err := h.auth.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, authResponse(usr, tokens))
}

// Refresh takes the refresh token from the body, falling back to the bearer
// header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok := h.refreshToken(c)
	if tok == "" {
		if bearer, ok := middleware.BearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			tok = bearer
		}
	}

	tokens, err := h.auth.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), middleware.SessionFrom(c), h.refreshToken(c)); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, response.Redirect{Redirect: middleware.LoginPath})
}

func (h *AuthHandler) refreshToken(c fiber.Ctx) string {
	if len(c.Body()) == 0 {
		return ""
	}
	var req refreshRequest
	if err := c.Bind().Body(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

func authResponse(usr user.User, tokens ucauth.Tokens) dto.AuthResponse {
	return dto.AuthResponse{
		User:         dto.NewUserProfileResponse(usr),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
}
