package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/logging"
	"jobboard/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	users    user.Repository
	jwt      jwt.Service
	sessions *session.Manager
	log      *logging.Logger

	hashCost int
}

func NewService(users user.Repository, jwtSvc jwt.Service, sessions *session.Manager, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{users: users, jwt: jwtSvc, sessions: sessions, log: log, hashCost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	fields := map[string]string{}
	if !isValidEmail(email) {
		fields["email"] = "Please enter a valid email"
	}
	if len(strings.TrimSpace(in.Password)) < minPasswordLen {
		fields["password"] = "Password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return user.User{}, Tokens{}, apperr.Validation(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return user.User{}, Tokens{}, apperr.Store("failed to hash password", err)
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if name := strings.TrimSpace(in.FullName); name != "" {
		u.FullName = &name
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, Tokens{}, apperr.Conflict("email already registered", err)
		}
		return user.User{}, Tokens{}, apperr.Store("failed to create user", err)
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, Tokens{}, apperr.Store("failed to load user", err)
	}

	tokens, err := s.issue(created)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	s.log.Info("user registered", "user_id", created.ID)
	return sanitizeUser(created), tokens, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, apperr.Unauthorized("invalid credentials", nil)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, apperr.Unauthorized("invalid credentials", nil)
		}
		return user.User{}, Tokens{}, apperr.Store("failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, apperr.Unauthorized("invalid credentials", nil)
	}

	tokens, err := s.issue(u)
	if err != nil {
		return user.User{}, Tokens{}, err
	}
	return sanitizeUser(u), tokens, nil
}

// Refresh exchanges a refresh token for a new pair. The presented refresh
// token is revoked so it cannot be replayed.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	claims, err := s.refreshClaims(ctx, refreshToken)
	if err != nil {
		return Tokens{}, err
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, apperr.Unauthorized("invalid refresh token", err)
		}
		return Tokens{}, apperr.Store("failed to load user", err)
	}

	if err := s.sessions.RevokeToken(ctx, claims.TokenID(), claims.Expiry()); err != nil {
		return Tokens{}, apperr.Store("failed to rotate refresh token", err)
	}
	return s.issue(u)
}

// Logout signs the session out and, when given, revokes the refresh token
// belonging to the same user.
func (s *Service) Logout(ctx context.Context, sess *session.Session, refreshToken string) error {
	userID, ok := sess.Identity()
	if !ok {
		return apperr.AuthRequired()
	}
	if err := s.sessions.SignOut(ctx, sess); err != nil {
		return apperr.Store("failed to sign out", err)
	}

	if refreshToken != "" {
		if claims, err := s.refreshClaims(ctx, refreshToken); err == nil && claims.UserID == userID {
			if err := s.sessions.RevokeToken(ctx, claims.TokenID(), claims.Expiry()); err != nil {
				return apperr.Store("failed to sign out", err)
			}
		}
	}
	s.log.Info("user signed out", "user_id", userID)
	return nil
}

func (s *Service) refreshClaims(ctx context.Context, refreshToken string) (jwt.Claims, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return jwt.Claims{}, apperr.Unauthorized("refresh token required", nil)
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Claims{}, apperr.Unauthorized("refresh token expired", err)
		}
		return jwt.Claims{}, apperr.Unauthorized("invalid refresh token", err)
	}
	if !s.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, apperr.Unauthorized("invalid refresh token", nil)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		return jwt.Claims{}, apperr.Store("failed to check refresh token", err)
	}
	if revoked {
		return jwt.Claims{}, apperr.Unauthorized("invalid refresh token", nil)
	}
	return claims, nil
}

func (s *Service) issue(u user.User) (Tokens, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return Tokens{}, apperr.Store("failed to issue token", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return Tokens{}, apperr.Store("failed to issue token", err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
