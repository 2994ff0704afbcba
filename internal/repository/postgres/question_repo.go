package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// QuestionRepo implements repository.QuestionRepository.
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo creates a new question repository.
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByQuizID returns the quiz's questions in id order with options and
// answer keys preloaded.
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_options.id")
		}).
		Preload("TrueFalse").
		Preload("TextAnswer").
		Where("quiz_id = ?", quizID).
		Order("id").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// GetByID returns a single question with its answer specification.
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.
		Preload("Options").
		Preload("TrueFalse").
		Preload("TextAnswer").
		First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// CountByQuizID returns the number of questions in a quiz.
func (r *QuestionRepo) CountByQuizID(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
