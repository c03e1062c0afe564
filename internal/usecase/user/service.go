package user

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/apperr"
	"jobboard/internal/session"
)

const maxFullNameLen = 120

type UpdateMeInput struct {
	// FullName nil leaves the name unchanged; an empty string clears it.
	FullName *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, sess *session.Session) (user.User, error) {
	userID, ok := sess.Identity()
	if !ok {
		return user.User{}, apperr.AuthRequired()
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.NotFoundOrForbidden()
		}
		return user.User{}, apperr.Store("failed to load profile", err)
	}
	return sanitizeUser(u), nil
}

func (s *Service) UpdateMe(ctx context.Context, sess *session.Session, in UpdateMeInput) (user.User, error) {
	userID, ok := sess.Identity()
	if !ok {
		return user.User{}, apperr.AuthRequired()
	}
	if in.FullName == nil {
		return s.GetMe(ctx, sess)
	}

	name := strings.TrimSpace(*in.FullName)
	if len([]rune(name)) > maxFullNameLen {
		return user.User{}, apperr.Validation(map[string]string{"full_name": "Full name must be at most 120 characters"})
	}
	var fullName *string
	if name != "" {
		fullName = &name
	}

	if err := s.users.UpdateProfile(ctx, userID, fullName); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.NotFoundOrForbidden()
		}
		return user.User{}, apperr.Store("failed to update profile", err)
	}
	return s.GetMe(ctx, sess)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
