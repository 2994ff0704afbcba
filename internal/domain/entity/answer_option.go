package entity

// AnswerOption is one of the four multiple-choice options of a question.
// Exactly one option per question carries the correct flag.
type AnswerOption struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"column:option_text;size:500;not null" json:"text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"-"` // hidden from clients
}

// TableName defines the table name for GORM.
func (AnswerOption) TableName() string {
	return "answer_options"
}
