package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// UserRepo implements repository.UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a new user repository.
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user.
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID returns a user by id.
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns a user by username.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword updates only the password column. The value must already be
// hashed; a plain Update bypasses the BeforeSave hook.
func (r *UserRepo) UpdatePassword(userID uint, hashedPassword string) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).
		Error
}

// Delete removes a user. Owned quizzes, answers and activity rows go with it
// via ON DELETE CASCADE.
func (r *UserRepo) Delete(id uint) error {
	return r.db.Delete(&entity.User{}, id).Error
}
