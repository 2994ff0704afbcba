package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_CorrectOption(t *testing.T) {
	q := &Question{
		Type: QuestionTypeMultipleChoice,
		Options: []AnswerOption{
			{ID: 1, Text: "A"},
			{ID: 2, Text: "B", IsCorrect: true},
			{ID: 3, Text: "C"},
			{ID: 4, Text: "D"},
		},
	}

	opt := q.CorrectOption()
	assert.NotNil(t, opt)
	assert.Equal(t, uint(2), opt.ID)
	assert.Equal(t, "B", opt.Text)
}

func TestQuestion_CorrectOption_NoneFlagged(t *testing.T) {
	q := &Question{
		Type:    QuestionTypeMultipleChoice,
		Options: []AnswerOption{{ID: 1, Text: "A"}, {ID: 2, Text: "B"}},
	}
	assert.Nil(t, q.CorrectOption())
}

func TestQuestion_OptionByID(t *testing.T) {
	q := &Question{
		Options: []AnswerOption{{ID: 10, Text: "A"}, {ID: 11, Text: "B"}},
	}

	assert.Equal(t, "B", q.OptionByID(11).Text)
	assert.Nil(t, q.OptionByID(99), "option of another question must not resolve")
}

func TestQuestion_CorrectAnswerLabel(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		want     string
	}{
		{
			name: "multiple choice uses correct option text",
			question: Question{
				Type:    QuestionTypeMultipleChoice,
				Options: []AnswerOption{{ID: 1, Text: "Jakarta", IsCorrect: true}, {ID: 2, Text: "Bandung"}},
			},
			want: "Jakarta",
		},
		{
			name:     "true/false true",
			question: Question{Type: QuestionTypeTrueFalse, TrueFalse: &TrueFalseAnswer{IsTrue: true}},
			want:     TrueLabel,
		},
		{
			name:     "true/false false",
			question: Question{Type: QuestionTypeTrueFalse, TrueFalse: &TrueFalseAnswer{IsTrue: false}},
			want:     FalseLabel,
		},
		{
			name:     "text uses canonical answer",
			question: Question{Type: QuestionTypeText, TextAnswer: &TextAnswer{Text: "Paris"}},
			want:     "Paris",
		},
		{
			name:     "missing specification yields empty label",
			question: Question{Type: QuestionTypeText},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.question.CorrectAnswerLabel())
		})
	}
}

func TestIsValidType(t *testing.T) {
	assert.True(t, IsValidType(QuestionTypeMultipleChoice))
	assert.True(t, IsValidType(QuestionTypeTrueFalse))
	assert.True(t, IsValidType(QuestionTypeText))
	assert.False(t, IsValidType("essay"))
	assert.False(t, IsValidType(""))
}
