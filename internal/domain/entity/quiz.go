package entity

import (
	"time"
)

// JoinCodeLength is the exact length of a quiz join code. Codes are numeric
// strings, unique across all quizzes, and only ever attached to public quizzes.
const JoinCodeLength = 4

// Quiz represents an authored quiz. The question list is ordered by question id;
// that order is the play sequence.
type Quiz struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:500;not null;default:''" json:"description"`
	Thumbnail   string  `gorm:"size:255;not null;default:''" json:"thumbnail"`
	IsPublic    bool    `gorm:"not null;default:false;index" json:"is_public"`
	JoinCode    *string `gorm:"column:quiz_code;size:4;uniqueIndex" json:"quiz_code,omitempty"`

	Questions []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName defines the table name for GORM.
func (Quiz) TableName() string {
	return "quizzes"
}

// IsAccessibleBy reports whether the given user may view and play the quiz:
// the owner always can, everyone else only when the quiz is public.
func (q *Quiz) IsAccessibleBy(userID uint) bool {
	return q.UserID == userID || q.IsPublic
}

// IsOwnedBy reports whether the given user created the quiz.
func (q *Quiz) IsOwnedBy(userID uint) bool {
	return q.UserID == userID
}

// HasJoinCode reports whether a join code has been assigned.
func (q *Quiz) HasJoinCode() bool {
	return q.JoinCode != nil && *q.JoinCode != ""
}

// CodeValue returns the assigned join code, or "" when none is assigned.
func (q *Quiz) CodeValue() string {
	if q.JoinCode == nil {
		return ""
	}
	return *q.JoinCode
}
