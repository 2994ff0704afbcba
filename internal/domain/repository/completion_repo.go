package repository

import (
	"time"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
)

// CompletionRow is a completion record joined with the quiz title, for the
// "quizzes I played" part of the activity feed.
type CompletionRow struct {
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// OwnerNotificationRow is a completion of one of the user's quizzes by another
// player, joined with the quiz title and the player's username.
type OwnerNotificationRow struct {
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Username       string    `json:"username"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// CompletionRepository defines methods for the completion records.
type CompletionRepository interface {
	Create(completion *entity.QuizCompletion) error
	// ListByUser returns the user's completions newest-first, joined with quiz
	// titles, limited to limit rows.
	ListByUser(userID uint, limit int) ([]CompletionRow, error)
	// ListForOwner returns completions of quizzes owned by ownerID made by
	// other users, newest-first.
	ListForOwner(ownerID uint, limit int) ([]OwnerNotificationRow, error)
	// ListByQuiz returns every completion of one quiz with player usernames,
	// newest-first (export view).
	ListByQuiz(quizID uint) ([]OwnerNotificationRow, error)
}
