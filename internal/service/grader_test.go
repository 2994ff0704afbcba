package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// ============================================================================
// Test fixtures
// ============================================================================

func multipleChoiceQuestion() *entity.Question {
	return &entity.Question{
		ID:     10,
		QuizID: 1,
		Text:   "Which planet is closest to the sun?",
		Type:   entity.QuestionTypeMultipleChoice,
		Options: []entity.AnswerOption{
			{ID: 101, QuestionID: 10, Text: "Venus"},
			{ID: 102, QuestionID: 10, Text: "Mercury", IsCorrect: true},
			{ID: 103, QuestionID: 10, Text: "Mars"},
			{ID: 104, QuestionID: 10, Text: "Earth"},
		},
	}
}

func trueFalseQuestion(isTrue bool) *entity.Question {
	return &entity.Question{
		ID:        20,
		QuizID:    1,
		Text:      "The sun is a star.",
		Type:      entity.QuestionTypeTrueFalse,
		TrueFalse: &entity.TrueFalseAnswer{QuestionID: 20, IsTrue: isTrue},
	}
}

func textQuestion(answer string) *entity.Question {
	return &entity.Question{
		ID:         30,
		QuizID:     1,
		Text:       "What is the capital of France?",
		Type:       entity.QuestionTypeText,
		TextAnswer: &entity.TextAnswer{QuestionID: 30, Text: answer},
	}
}

// ============================================================================
// Multiple choice
// ============================================================================

func TestGradeAnswer_MultipleChoice_Correct(t *testing.T) {
	q := multipleChoiceQuestion()

	outcome, err := GradeAnswer(q, "102")

	require.NoError(t, err)
	assert.True(t, outcome.IsCorrect)
	assert.Equal(t, "Mercury", outcome.CorrectAnswer)
	require.NotNil(t, outcome.ChosenOptionID)
	assert.Equal(t, uint(102), *outcome.ChosenOptionID)
}

func TestGradeAnswer_MultipleChoice_Incorrect(t *testing.T) {
	q := multipleChoiceQuestion()

	outcome, err := GradeAnswer(q, "103")

	require.NoError(t, err)
	assert.False(t, outcome.IsCorrect)
	// The canonical answer is revealed even for a wrong pick.
	assert.Equal(t, "Mercury", outcome.CorrectAnswer)
}

func TestGradeAnswer_MultipleChoice_ForeignOptionRejected(t *testing.T) {
	q := multipleChoiceQuestion()

	// 999 is a real-looking id that belongs to no option of this question.
	outcome, err := GradeAnswer(q, "999")

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOption)
}

func TestGradeAnswer_MultipleChoice_NonNumericRejected(t *testing.T) {
	q := multipleChoiceQuestion()

	for _, submitted := range []string{"Mercury", "-1", "0", "1.5"} {
		outcome, err := GradeAnswer(q, submitted)
		assert.Nil(t, outcome, "submission %q", submitted)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "submission %q", submitted)
	}
}

// ============================================================================
// True / false
// ============================================================================

func TestGradeAnswer_TrueFalse(t *testing.T) {
	tests := []struct {
		name        string
		keyIsTrue   bool
		submitted   string
		wantCorrect bool
		wantAnswer  string
	}{
		{"true key, true answer", true, "true", true, entity.TrueLabel},
		{"true key, false answer", true, "false", false, entity.TrueLabel},
		{"false key, false answer", false, "false", true, entity.FalseLabel},
		{"false key, true answer", false, "true", false, entity.FalseLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := GradeAnswer(trueFalseQuestion(tt.keyIsTrue), tt.submitted)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, outcome.IsCorrect)
			assert.Equal(t, tt.wantAnswer, outcome.CorrectAnswer)
		})
	}
}

func TestGradeAnswer_TrueFalse_NonLiteralRejected(t *testing.T) {
	for _, submitted := range []string{"True", "FALSE", "yes", "1"} {
		outcome, err := GradeAnswer(trueFalseQuestion(true), submitted)
		assert.Nil(t, outcome, "submission %q", submitted)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "submission %q", submitted)
	}
}

// ============================================================================
// Free text with fuzzy matching
// ============================================================================

func TestGradeAnswer_Text(t *testing.T) {
	tests := []struct {
		name        string
		canonical   string
		submitted   string
		wantCorrect bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"case and whitespace insensitive", "Paris", "  paris ", true},
		// "pariss" vs "paris": distance 1 over max length 6 gives 0.833.
		{"one extra letter accepted", "Paris", "pariss", true},
		// "pariz" vs "paris": distance 1 over max length 5 gives exactly 0.80.
		{"threshold boundary accepted", "Paris", "pariz", true},
		// "parys s" vs "paris": distance 3 over 7 gives 0.571.
		{"too far off rejected", "Paris", "parys s", false},
		{"unrelated rejected", "Paris", "London", false},
		{"long answer with small typo", "photosynthesis", "photosynthesys", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := GradeAnswer(textQuestion(tt.canonical), tt.submitted)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, outcome.IsCorrect)
			assert.Equal(t, tt.canonical, outcome.CorrectAnswer)
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, textSimilarity("paris", "paris"), 1e-9)
	assert.InDelta(t, 0.8, textSimilarity("paris", "pariz"), 1e-9)
	assert.InDelta(t, 1.0-1.0/6.0, textSimilarity("pariss", "paris"), 1e-9)
	assert.InDelta(t, 0.0, textSimilarity("ab", "xy"), 1e-9)
	assert.InDelta(t, 1.0, textSimilarity("", ""), 1e-9)
}

// ============================================================================
// Dispatch
// ============================================================================

func TestGradeAnswer_UnknownTypeRejected(t *testing.T) {
	q := &entity.Question{ID: 40, Type: "essay"}

	outcome, err := GradeAnswer(q, "whatever")

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGradeAnswer_MissingKeysSurfaceAsNotFound(t *testing.T) {
	tf := &entity.Question{ID: 41, Type: entity.QuestionTypeTrueFalse}
	_, err := GradeAnswer(tf, "true")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	text := &entity.Question{ID: 42, Type: entity.QuestionTypeText}
	_, err = GradeAnswer(text, "anything")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
