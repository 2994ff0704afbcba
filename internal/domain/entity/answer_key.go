package entity

// TrueFalseAnswer stores the correct boolean value of a true/false question.
type TrueFalseAnswer struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	QuestionID uint `gorm:"not null;uniqueIndex" json:"question_id"`
	IsTrue     bool `gorm:"not null" json:"is_true"`
}

// TableName defines the table name for GORM.
func (TrueFalseAnswer) TableName() string {
	return "true_false_answers"
}

// TextAnswer stores the canonical correct string of a free-text question.
type TextAnswer struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;uniqueIndex" json:"question_id"`
	Text       string `gorm:"column:answer_text;size:500;not null" json:"answer_text"`
}

// TableName defines the table name for GORM.
func (TextAnswer) TableName() string {
	return "text_answers"
}
