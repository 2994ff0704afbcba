package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizverse-api/internal/pkg/errors"
)

// MultipleChoiceOptionCount is the exact number of options a multiple-choice
// question must carry.
const MultipleChoiceOptionCount = 4

// maxJoinCodeAttempts bounds the retry loop around the unique constraint when
// drawing a random join code. With 10000 possible codes this only trips when
// the code space is nearly exhausted.
const maxJoinCodeAttempts = 25

// QuestionInput describes one question of a quiz being created.
type QuestionInput struct {
	Text string `json:"text" binding:"required,min=1,max=500"`
	Type string `json:"type" binding:"required"`

	// Multiple-choice: exactly 4 options and the index of the correct one.
	Options      []string `json:"options,omitempty"`
	CorrectIndex *int     `json:"correct_index,omitempty"`

	// True/false.
	BoolAnswer *bool `json:"bool_answer,omitempty"`

	// Free text.
	TextAnswer string `json:"text_answer,omitempty"`
}

// CreateQuizInput describes a quiz being created together with its questions.
type CreateQuizInput struct {
	Title       string          `json:"title" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	Thumbnail   string          `json:"thumbnail" binding:"omitempty,max=255"`
	IsPublic    bool            `json:"is_public"`
	Questions   []QuestionInput `json:"questions" binding:"required,min=1"`
}

// QuizService provides quiz authoring, listing and the owner's completion
// view.
type QuizService struct {
	quizRepo       repository.QuizRepository
	questionRepo   repository.QuestionRepository
	completionRepo repository.CompletionRepository
	db             *gorm.DB
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	completionRepo repository.CompletionRepository,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		completionRepo: completionRepo,
		db:             db,
	}
}

// CreateQuiz creates a quiz with its questions and answer specifications in
// one transaction; either every row lands or none does. Public quizzes get a
// join code assigned right after the commit (best-effort; the owner can
// backfill a code later if assignment fails).
func (s *QuizService) CreateQuiz(userID uint, input CreateQuizInput) (*entity.Quiz, error) {
	if err := validateQuizInput(&input); err != nil {
		return nil, err
	}

	quiz := &entity.Quiz{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Thumbnail:   strings.TrimSpace(input.Thumbnail),
		IsPublic:    input.IsPublic,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		for i := range input.Questions {
			in := &input.Questions[i]
			question := &entity.Question{
				QuizID: quiz.ID,
				Text:   strings.TrimSpace(in.Text),
				Type:   in.Type,
			}
			if err := tx.Create(question).Error; err != nil {
				return fmt.Errorf("failed to create question %d: %w", i+1, err)
			}

			switch in.Type {
			case entity.QuestionTypeMultipleChoice:
				for idx, optionText := range in.Options {
					option := &entity.AnswerOption{
						QuestionID: question.ID,
						Text:       strings.TrimSpace(optionText),
						IsCorrect:  idx == *in.CorrectIndex,
					}
					if err := tx.Create(option).Error; err != nil {
						return fmt.Errorf("failed to create option %d of question %d: %w", idx+1, i+1, err)
					}
				}
			case entity.QuestionTypeTrueFalse:
				key := &entity.TrueFalseAnswer{QuestionID: question.ID, IsTrue: *in.BoolAnswer}
				if err := tx.Create(key).Error; err != nil {
					return fmt.Errorf("failed to create true/false key of question %d: %w", i+1, err)
				}
			case entity.QuestionTypeText:
				key := &entity.TextAnswer{QuestionID: question.ID, Text: strings.TrimSpace(in.TextAnswer)}
				if err := tx.Create(key).Error; err != nil {
					return fmt.Errorf("failed to create text key of question %d: %w", i+1, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if quiz.IsPublic {
		code, err := s.assignJoinCode(quiz.ID)
		if err != nil {
			log.Printf("[QuizService] Failed to assign join code to quiz #%d: %v", quiz.ID, err)
		} else {
			quiz.JoinCode = &code
		}
	}

	log.Printf("[QuizService] Quiz #%d created by user #%d with %d questions", quiz.ID, userID, len(input.Questions))
	return quiz, nil
}

// GenerateJoinCode returns the quiz's join code, assigning one when the quiz
// has none yet. Owner-only; the quiz must be public.
func (s *QuizService) GenerateJoinCode(userID, quizID uint) (string, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return "", err
	}
	if !quiz.IsOwnedBy(userID) {
		return "", apperrors.ErrNotFound
	}
	if !quiz.IsPublic {
		return "", fmt.Errorf("%w: quiz must be public to carry a join code", apperrors.ErrValidation)
	}
	if quiz.HasJoinCode() {
		return quiz.CodeValue(), nil
	}
	return s.assignJoinCode(quizID)
}

// assignJoinCode draws random 4-digit codes and writes them under the unique
// constraint until one sticks. The constraint violation is the only
// uniqueness signal; there is no separate existence check.
func (s *QuizService) assignJoinCode(quizID uint) (string, error) {
	for attempt := 0; attempt < maxJoinCodeAttempts; attempt++ {
		code := fmt.Sprintf("%04d", rand.Intn(10000))
		err := s.quizRepo.AssignJoinCode(quizID, code)
		if err == nil {
			return code, nil
		}
		if errors.Is(err, repository.ErrCodeTaken) {
			continue
		}
		if errors.Is(err, apperrors.ErrConflict) {
			// Lost a race against a concurrent assignment; return the winner.
			quiz, readErr := s.quizRepo.GetByID(quizID)
			if readErr == nil && quiz.HasJoinCode() {
				return quiz.CodeValue(), nil
			}
			return "", err
		}
		return "", err
	}
	return "", fmt.Errorf("no free join code found for quiz #%d after %d attempts", quizID, maxJoinCodeAttempts)
}

// GetQuizByID returns a quiz by id.
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetByID(quizID)
}

// ListPublic returns public quizzes with pagination.
func (s *QuizService) ListPublic(page, pageSize int) ([]entity.Quiz, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.quizRepo.ListPublic(pageSize, offset)
}

// ListOwned returns the user's own quizzes with question counts.
func (s *QuizService) ListOwned(userID uint) ([]repository.OwnedQuizRow, error) {
	return s.quizRepo.ListByOwner(userID)
}

// ListQuizCompletions returns every completion of one of the user's quizzes,
// newest-first, for the owner's results and export views.
func (s *QuizService) ListQuizCompletions(userID, quizID uint) (*entity.Quiz, []repository.OwnerNotificationRow, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, nil, err
	}
	if !quiz.IsOwnedBy(userID) {
		return nil, nil, apperrors.ErrNotFound
	}

	completions, err := s.completionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load completions for quiz #%d: %w", quizID, err)
	}
	return quiz, completions, nil
}

// DeleteQuiz removes one of the user's own quizzes; questions and answer rows
// cascade in the database.
func (s *QuizService) DeleteQuiz(userID, quizID uint) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if !quiz.IsOwnedBy(userID) {
		return apperrors.ErrNotFound
	}
	return s.quizRepo.Delete(quizID)
}

// validateQuizInput enforces the authoring rules before any row is written.
func validateQuizInput(input *CreateQuizInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if len(input.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", apperrors.ErrValidation)
	}

	for i := range input.Questions {
		in := &input.Questions[i]
		if strings.TrimSpace(in.Text) == "" {
			return fmt.Errorf("%w: question %d has no text", apperrors.ErrValidation, i+1)
		}
		if !entity.IsValidType(in.Type) {
			return fmt.Errorf("%w: question %d has unknown type %q", apperrors.ErrValidation, i+1, in.Type)
		}

		switch in.Type {
		case entity.QuestionTypeMultipleChoice:
			if len(in.Options) != MultipleChoiceOptionCount {
				return fmt.Errorf("%w: question %d must have exactly %d options",
					apperrors.ErrValidation, i+1, MultipleChoiceOptionCount)
			}
			for idx, opt := range in.Options {
				if strings.TrimSpace(opt) == "" {
					return fmt.Errorf("%w: option %d of question %d is empty", apperrors.ErrValidation, idx+1, i+1)
				}
			}
			if in.CorrectIndex == nil || *in.CorrectIndex < 0 || *in.CorrectIndex >= MultipleChoiceOptionCount {
				return fmt.Errorf("%w: question %d has an invalid correct option index", apperrors.ErrValidation, i+1)
			}
		case entity.QuestionTypeTrueFalse:
			if in.BoolAnswer == nil {
				return fmt.Errorf("%w: question %d needs a true/false answer", apperrors.ErrValidation, i+1)
			}
		case entity.QuestionTypeText:
			if strings.TrimSpace(in.TextAnswer) == "" {
				return fmt.Errorf("%w: question %d needs a text answer", apperrors.ErrValidation, i+1)
			}
		}
	}
	return nil
}
