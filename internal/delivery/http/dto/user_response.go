package dto

import (
	"time"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         UserProfileResponse `json:"user"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
}

func NewUserProfileResponse(u user.User) UserProfileResponse {
	return UserProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.UTC(),
	}
}
