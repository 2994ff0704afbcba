package repository

import (
	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// ActivityRepository defines methods for the append-only activity log.
type ActivityRepository interface {
	Create(log *entity.ActivityLog) error
	// ListByUserAndTypes returns the user's entries with one of the given
	// activity types, newest-first, limited to limit rows. An empty types
	// slice matches every type.
	ListByUserAndTypes(userID uint, types []string, limit int) ([]entity.ActivityLog, error)
}
