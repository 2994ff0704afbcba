package dto

import (
	"time"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// UserResponse is the user profile as shown to clients. The password hash
// never leaves the server.
type UserResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullname"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the issued token together with the profile.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse creates the DTO for one user.
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
