package repository

import (
	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// OwnedQuizRow is one row of the owner's quiz list, with the question count
// joined in.
type OwnedQuizRow struct {
	entity.Quiz
	QuestionCount int64 `json:"question_count"`
}

// QuizRepository defines methods for working with quizzes.
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetByJoinCode resolves a public quiz by its join code. Codes attached to
	// private quizzes do not resolve.
	GetByJoinCode(code string) (*entity.Quiz, error)
	// GetWithQuestions loads the quiz with its ordered question list and all
	// answer specifications.
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// ListPublic returns public quizzes newest-first with the total count.
	ListPublic(limit, offset int) ([]entity.Quiz, int64, error)
	// ListByOwner returns the user's quizzes newest-first with question counts.
	ListByOwner(userID uint) ([]OwnedQuizRow, error)
	// AssignJoinCode writes the code under the unique constraint on quiz_code.
	// Returns ErrCodeTaken when another quiz already holds the code.
	AssignJoinCode(quizID uint, code string) error
	Delete(id uint) error
}
