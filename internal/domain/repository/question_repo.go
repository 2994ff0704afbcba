package repository

import (
	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// QuestionRepository defines methods for working with questions.
type QuestionRepository interface {
	// GetByQuizID returns the quiz's questions in id order (the play sequence)
	// with options and answer keys preloaded.
	GetByQuizID(quizID uint) ([]entity.Question, error)
	GetByID(id uint) (*entity.Question, error)
	CountByQuizID(quizID uint) (int64, error)
}
