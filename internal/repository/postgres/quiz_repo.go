package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// QuizRepo implements repository.QuizRepository.
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo creates a new quiz repository.
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create inserts a new quiz.
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID returns a quiz by id.
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByJoinCode resolves a public quiz by join code. A code sitting on a
// private quiz does not resolve.
func (r *QuizRepo) GetByJoinCode(code string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("quiz_code = ? AND is_public = ?", code, true).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions returns a quiz with its ordered questions and answer
// specifications. Question id order is the play sequence.
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_options.id")
		}).
		Preload("Questions.TrueFalse").
		Preload("Questions.TextAnswer").
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListPublic returns public quizzes newest-first with the total count.
func (r *QuizRepo) ListPublic(limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	query := r.db.Model(&entity.Quiz{}).Where("is_public = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Limit(limit).Offset(offset).Order("id DESC").Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// ListByOwner returns the user's quizzes newest-first with question counts.
func (r *QuizRepo) ListByOwner(userID uint) ([]repository.OwnedQuizRow, error) {
	var rows []repository.OwnedQuizRow
	err := r.db.Model(&entity.Quiz{}).
		Select("quizzes.*, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Where("quizzes.user_id = ?", userID).
		Group("quizzes.id").
		Order("quizzes.id DESC").
		Find(&rows).Error
	return rows, err
}

// AssignJoinCode writes the code for a quiz that has none yet. The unique
// constraint on quiz_code is the sole uniqueness check: a 23505 comes back as
// repository.ErrCodeTaken and the caller retries with a new code.
func (r *QuizRepo) AssignJoinCode(quizID uint, code string) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ? AND quiz_code IS NULL", quizID).
		Update("quiz_code", code)

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return fmt.Errorf("%w: %q", repository.ErrCodeTaken, code)
		}
		return fmt.Errorf("assign join code to quiz #%d failed: %w", quizID, result.Error)
	}
	if result.RowsAffected == 0 {
		// Quiz missing or a code is already assigned; let the caller re-read.
		return apperrors.ErrConflict
	}
	return nil
}

// Delete removes a quiz and, via FK cascade, its questions and answer rows.
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Quiz{}, id).Error
}

// isUniqueViolation checks for a Postgres unique violation (23505) from both
// the pgx and lib/pq drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
