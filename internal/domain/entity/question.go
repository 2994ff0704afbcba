package entity

import (
	"time"
)

// Question type constants. The type decides which answer specification rows
// belong to the question and how submissions are graded.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeText           = "text"
)

// Display labels for boolean answers.
const (
	TrueLabel  = "True"
	FalseLabel = "False"
)

// Question represents a single question inside a quiz. Exactly one of the
// answer specifications (Options / TrueFalse / TextAnswer) is populated,
// depending on Type.
type Question struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	QuizID uint   `gorm:"not null;index" json:"quiz_id"`
	Text   string `gorm:"column:question_text;size:500;not null" json:"question_text"`
	Type   string `gorm:"column:question_type;size:20;not null" json:"question_type"`

	Options    []AnswerOption   `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	TrueFalse  *TrueFalseAnswer `gorm:"foreignKey:QuestionID" json:"-"`
	TextAnswer *TextAnswer      `gorm:"foreignKey:QuestionID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName defines the table name for GORM.
func (Question) TableName() string {
	return "questions"
}

// IsValidType reports whether t is one of the supported question types.
func IsValidType(t string) bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeText:
		return true
	}
	return false
}

// CorrectOption returns the option flagged correct, or nil when the question
// is not multiple-choice or no option is flagged.
func (q *Question) CorrectOption() *AnswerOption {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// OptionByID returns the option with the given id, or nil when the id does
// not belong to this question.
func (q *Question) OptionByID(optionID uint) *AnswerOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectAnswerLabel materializes the canonical correct answer for display:
// option text for multiple-choice, True/False label for boolean questions and
// the canonical string for free-text questions.
func (q *Question) CorrectAnswerLabel() string {
	switch q.Type {
	case QuestionTypeMultipleChoice:
		if opt := q.CorrectOption(); opt != nil {
			return opt.Text
		}
	case QuestionTypeTrueFalse:
		if q.TrueFalse != nil {
			if q.TrueFalse.IsTrue {
				return TrueLabel
			}
			return FalseLabel
		}
	case QuestionTypeText:
		if q.TextAnswer != nil {
			return q.TextAnswer.Text
		}
	}
	return ""
}
