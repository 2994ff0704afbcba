package entity

import (
	"time"
)

// UserAnswer is the audit row for a single user's most recent answer to a
// single question. At most one row exists per (user, quiz, question) triple;
// re-answering overwrites the previous row.
type UserAnswer struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	UserID     uint  `gorm:"not null;uniqueIndex:idx_user_quiz_question" json:"user_id"`
	QuizID     uint  `gorm:"not null;uniqueIndex:idx_user_quiz_question;index" json:"quiz_id"`
	QuestionID uint  `gorm:"not null;uniqueIndex:idx_user_quiz_question" json:"question_id"`
	AnswerID   *uint `gorm:"index" json:"answer_id,omitempty"` // chosen option id, multiple-choice only

	AnswerText string `gorm:"size:500;not null;default:''" json:"answer_text"`
	IsCorrect  bool   `gorm:"not null" json:"is_correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName defines the table name for GORM.
func (UserAnswer) TableName() string {
	return "user_answers"
}
