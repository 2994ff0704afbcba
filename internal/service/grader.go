package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/yourusername/quizverse-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// TextSimilarityThreshold is the minimum normalized Levenshtein similarity for
// a free-text submission to count as correct when it is not an exact match.
// Similarity = 1 - distance/max(len). Grading here is authoritative: the same
// verdict is persisted in the audit row and shown to the player.
const TextSimilarityThreshold = 0.80

// GradeOutcome is the verdict for one submitted answer.
type GradeOutcome struct {
	IsCorrect bool
	// CorrectAnswer is the canonical correct answer materialized for display.
	CorrectAnswer string
	// ChosenOptionID is set for multiple-choice submissions only.
	ChosenOptionID *uint
}

// GradeAnswer grades one raw submission against a question's answer
// specification. For multiple-choice questions the submission is the option id
// as a decimal string; for true/false it is the literal "true" or "false"; for
// free text it is the answer itself.
func GradeAnswer(question *entity.Question, submitted string) (*GradeOutcome, error) {
	switch question.Type {
	case entity.QuestionTypeMultipleChoice:
		return gradeMultipleChoice(question, submitted)
	case entity.QuestionTypeTrueFalse:
		return gradeTrueFalse(question, submitted)
	case entity.QuestionTypeText:
		return gradeText(question, submitted)
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, question.Type)
	}
}

func gradeMultipleChoice(question *entity.Question, submitted string) (*GradeOutcome, error) {
	optionID, err := strconv.ParseUint(submitted, 10, 32)
	if err != nil || optionID == 0 {
		return nil, fmt.Errorf("%w: option id must be a positive integer", apperrors.ErrValidation)
	}

	chosen := question.OptionByID(uint(optionID))
	if chosen == nil {
		return nil, fmt.Errorf("%w: option #%d, question #%d", apperrors.ErrInvalidOption, optionID, question.ID)
	}

	correct := question.CorrectOption()
	if correct == nil {
		return nil, fmt.Errorf("question #%d has no correct option: %w", question.ID, apperrors.ErrNotFound)
	}

	chosenID := chosen.ID
	return &GradeOutcome{
		IsCorrect:      chosen.IsCorrect,
		CorrectAnswer:  correct.Text,
		ChosenOptionID: &chosenID,
	}, nil
}

func gradeTrueFalse(question *entity.Question, submitted string) (*GradeOutcome, error) {
	if question.TrueFalse == nil {
		return nil, fmt.Errorf("true/false key missing for question #%d: %w", question.ID, apperrors.ErrNotFound)
	}
	if submitted != "true" && submitted != "false" {
		return nil, fmt.Errorf("%w: answer must be the literal \"true\" or \"false\"", apperrors.ErrValidation)
	}

	isTrue := question.TrueFalse.IsTrue
	correctAnswer := entity.FalseLabel
	if isTrue {
		correctAnswer = entity.TrueLabel
	}

	return &GradeOutcome{
		IsCorrect:     (submitted == "true") == isTrue,
		CorrectAnswer: correctAnswer,
	}, nil
}

func gradeText(question *entity.Question, submitted string) (*GradeOutcome, error) {
	if question.TextAnswer == nil {
		return nil, fmt.Errorf("text key missing for question #%d: %w", question.ID, apperrors.ErrNotFound)
	}
	canonical := question.TextAnswer.Text

	return &GradeOutcome{
		IsCorrect:     textMatches(submitted, canonical),
		CorrectAnswer: canonical,
	}, nil
}

// textMatches accepts a free-text submission when it equals the canonical
// answer after trimming and case folding, or when the normalized Levenshtein
// similarity of the two reaches TextSimilarityThreshold.
func textMatches(submitted, canonical string) bool {
	a := strings.ToLower(strings.TrimSpace(submitted))
	b := strings.ToLower(strings.TrimSpace(canonical))
	if a == b {
		return true
	}
	return textSimilarity(a, b) >= TextSimilarityThreshold
}

// textSimilarity returns 1 - distance/max(len) over runes for two already
// normalized strings. Two empty strings are identical (similarity 1).
func textSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
