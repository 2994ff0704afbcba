package repository

import (
	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// UserRepository defines methods for working with users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	UpdatePassword(userID uint, hashedPassword string) error
	Delete(id uint) error
}
