package entity

import (
	"time"
)

// QuizCompletion is the persisted summary of one finished play-through.
// History is append-only: a user may accumulate many completions for the same
// quiz, and rows are only removed by the bulk clear-activity operation.
type QuizCompletion struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	UserID         uint `gorm:"not null;index" json:"user_id"`
	QuizID         uint `gorm:"not null;index" json:"quiz_id"`
	Score          int  `gorm:"not null;default:0" json:"score"`
	TotalQuestions int  `gorm:"not null;default:0" json:"total_questions"`

	CompletedAt time.Time `gorm:"not null;autoCreateTime" json:"completed_at"`
}

// TableName defines the table name for GORM.
func (QuizCompletion) TableName() string {
	return "user_quiz_completions"
}
