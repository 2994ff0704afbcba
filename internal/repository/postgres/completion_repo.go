package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
)

// CompletionRepo implements repository.CompletionRepository.
type CompletionRepo struct {
	db *gorm.DB
}

// NewCompletionRepo creates a new completion repository.
func NewCompletionRepo(db *gorm.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Create appends one completion record.
func (r *CompletionRepo) Create(completion *entity.QuizCompletion) error {
	return r.db.Create(completion).Error
}

// ListByUser returns the user's completions newest-first with quiz titles.
func (r *CompletionRepo) ListByUser(userID uint, limit int) ([]repository.CompletionRow, error) {
	var rows []repository.CompletionRow
	err := r.db.Model(&entity.QuizCompletion{}).
		Select("user_quiz_completions.quiz_id, quizzes.title AS quiz_title, user_quiz_completions.score, user_quiz_completions.total_questions, user_quiz_completions.completed_at").
		Joins("JOIN quizzes ON quizzes.id = user_quiz_completions.quiz_id").
		Where("user_quiz_completions.user_id = ?", userID).
		Order("user_quiz_completions.completed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListForOwner returns completions of the owner's quizzes by other users,
// newest-first. Feeds the owner's notification list.
func (r *CompletionRepo) ListForOwner(ownerID uint, limit int) ([]repository.OwnerNotificationRow, error) {
	var rows []repository.OwnerNotificationRow
	err := r.db.Model(&entity.QuizCompletion{}).
		Select("user_quiz_completions.quiz_id, quizzes.title AS quiz_title, users.username, user_quiz_completions.score, user_quiz_completions.total_questions, user_quiz_completions.completed_at").
		Joins("JOIN quizzes ON quizzes.id = user_quiz_completions.quiz_id").
		Joins("JOIN users ON users.id = user_quiz_completions.user_id").
		Where("quizzes.user_id = ? AND user_quiz_completions.user_id <> ?", ownerID, ownerID).
		Order("user_quiz_completions.completed_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ListByQuiz returns every completion of one quiz with player usernames,
// newest-first.
func (r *CompletionRepo) ListByQuiz(quizID uint) ([]repository.OwnerNotificationRow, error) {
	var rows []repository.OwnerNotificationRow
	err := r.db.Model(&entity.QuizCompletion{}).
		Select("user_quiz_completions.quiz_id, quizzes.title AS quiz_title, users.username, user_quiz_completions.score, user_quiz_completions.total_questions, user_quiz_completions.completed_at").
		Joins("JOIN quizzes ON quizzes.id = user_quiz_completions.quiz_id").
		Joins("JOIN users ON users.id = user_quiz_completions.user_id").
		Where("user_quiz_completions.quiz_id = ?", quizID).
		Order("user_quiz_completions.completed_at DESC").
		Find(&rows).Error
	return rows, err
}
