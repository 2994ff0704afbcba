package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// ActivityRepo implements repository.ActivityRepository.
type ActivityRepo struct {
	db *gorm.DB
}

// NewActivityRepo creates a new activity log repository.
func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// Create appends one activity entry.
func (r *ActivityRepo) Create(log *entity.ActivityLog) error {
	return r.db.Create(log).Error
}

// ListByUserAndTypes returns the user's entries newest-first, optionally
// filtered to the given activity types.
func (r *ActivityRepo) ListByUserAndTypes(userID uint, types []string, limit int) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	query := r.db.Where("user_id = ?", userID)
	if len(types) > 0 {
		query = query.Where("activity_type IN ?", types)
	}
	err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
