package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// ============================================================================
// Authoring validation
// ============================================================================

func validCreateInput() CreateQuizInput {
	correct := 1
	isTrue := true
	return CreateQuizInput{
		Title:    "Geography",
		IsPublic: true,
		Questions: []QuestionInput{
			{
				Text:         "Which option is correct?",
				Type:         "multiple_choice",
				Options:      []string{"A", "B", "C", "D"},
				CorrectIndex: &correct,
			},
			{
				Text:       "The earth is round.",
				Type:       "true_false",
				BoolAnswer: &isTrue,
			},
			{
				Text:       "Capital of France?",
				Type:       "text",
				TextAnswer: "Paris",
			},
		},
	}
}

func TestValidateQuizInput_AcceptsAllThreeTypes(t *testing.T) {
	input := validCreateInput()
	assert.NoError(t, validateQuizInput(&input))
}

func TestValidateQuizInput_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateQuizInput)
	}{
		{"blank title", func(in *CreateQuizInput) { in.Title = "  " }},
		{"no questions", func(in *CreateQuizInput) { in.Questions = nil }},
		{"blank question text", func(in *CreateQuizInput) { in.Questions[0].Text = "" }},
		{"unknown question type", func(in *CreateQuizInput) { in.Questions[0].Type = "essay" }},
		{"too few options", func(in *CreateQuizInput) { in.Questions[0].Options = []string{"A", "B", "C"} }},
		{"too many options", func(in *CreateQuizInput) { in.Questions[0].Options = []string{"A", "B", "C", "D", "E"} }},
		{"empty option", func(in *CreateQuizInput) { in.Questions[0].Options[2] = " " }},
		{"missing correct index", func(in *CreateQuizInput) { in.Questions[0].CorrectIndex = nil }},
		{"correct index out of range", func(in *CreateQuizInput) { i := 4; in.Questions[0].CorrectIndex = &i }},
		{"negative correct index", func(in *CreateQuizInput) { i := -1; in.Questions[0].CorrectIndex = &i }},
		{"missing bool answer", func(in *CreateQuizInput) { in.Questions[1].BoolAnswer = nil }},
		{"blank text answer", func(in *CreateQuizInput) { in.Questions[2].TextAnswer = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)
			assert.ErrorIs(t, validateQuizInput(&input), apperrors.ErrValidation)
		})
	}
}

// ============================================================================
// Join code assignment
// ============================================================================

func TestAssignJoinCode_RetriesOnTakenCode(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	// First two draws collide with existing codes, the third sticks.
	quizRepo.On("AssignJoinCode", quizID, mock.AnythingOfType("string")).Return(repository.ErrCodeTaken).Twice()
	quizRepo.On("AssignJoinCode", quizID, mock.AnythingOfType("string")).Return(nil).Once()

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	code, err := svc.assignJoinCode(quizID)

	require.NoError(t, err)
	assert.Len(t, code, 4)
	quizRepo.AssertExpectations(t)
}

func TestAssignJoinCode_ConcurrentWinnerReturned(t *testing.T) {
	// Another request assigned a code between our read and write; the service
	// must hand back the code that won instead of failing.
	quizRepo := new(MockQuizRepo)
	quizRepo.On("AssignJoinCode", quizID, mock.AnythingOfType("string")).Return(apperrors.ErrConflict).Once()
	winner := publicQuiz()
	quizRepo.On("GetByID", quizID).Return(winner, nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	code, err := svc.assignJoinCode(quizID)

	require.NoError(t, err)
	assert.Equal(t, "4821", code)
}

func TestGenerateJoinCode_RequiresOwnership(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetByID", quizID).Return(publicQuiz(), nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	_, err := svc.GenerateJoinCode(playerID, quizID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	quizRepo.AssertNotCalled(t, "AssignJoinCode", mock.Anything, mock.Anything)
}

func TestGenerateJoinCode_RequiresPublicQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetByID", quizID).Return(privateQuiz(), nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	_, err := svc.GenerateJoinCode(ownerID, quizID)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGenerateJoinCode_ExistingCodeReturnedUnchanged(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetByID", quizID).Return(publicQuiz(), nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	code, err := svc.GenerateJoinCode(ownerID, quizID)

	require.NoError(t, err)
	assert.Equal(t, "4821", code)
	quizRepo.AssertNotCalled(t, "AssignJoinCode", mock.Anything, mock.Anything)
}

// ============================================================================
// Listing and deletion
// ============================================================================

func TestListPublic_NormalizesPagination(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("ListPublic", 20, 0).Return([]entity.Quiz{}, int64(0), nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	_, _, err := svc.ListPublic(0, 500)

	require.NoError(t, err)
	quizRepo.AssertExpectations(t)
}

func TestDeleteQuiz_OnlyOwnerMayDelete(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetByID", quizID).Return(publicQuiz(), nil)

	svc := NewQuizService(quizRepo, new(MockQuestionRepo), new(MockCompletionRepo), nil)
	err := svc.DeleteQuiz(playerID, quizID)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	quizRepo.AssertNotCalled(t, "Delete", quizID)
}
