package repository

import (
	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// UserAnswerRepository defines methods for the per-answer audit rows.
type UserAnswerRepository interface {
	// Upsert writes the audit row for (user, quiz, question), overwriting any
	// previous answer for the same triple.
	Upsert(answer *entity.UserAnswer) error
	// GetByUserAndQuiz returns the user's audit rows for one quiz in question
	// id order.
	GetByUserAndQuiz(userID, quizID uint) ([]entity.UserAnswer, error)
}
