package dto

import (
	"time"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
)

// OptionResponse is one answer option as shown to a player. Correctness never
// leaves the server through this type.
type OptionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse is one question in play order, options included for
// multiple choice.
type QuestionResponse struct {
	ID      uint             `json:"id"`
	Text    string           `json:"text"`
	Type    string           `json:"type"`
	Options []OptionResponse `json:"options,omitempty"`
}

// QuizResponse is the quiz metadata shown to clients.
type QuizResponse struct {
	ID          uint               `json:"id"`
	UserID      uint               `json:"user_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Thumbnail   string             `json:"thumbnail,omitempty"`
	IsPublic    bool               `json:"is_public"`
	JoinCode    string             `json:"join_code,omitempty"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// OwnedQuizResponse is one row of the owner's quiz list.
type OwnedQuizResponse struct {
	QuizResponse
	QuestionCount int64 `json:"question_count"`
}

// PaginatedQuizResponse is a page of the public quiz listing.
type PaginatedQuizResponse struct {
	Quizzes []QuizResponse `json:"quizzes"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// NewQuestionResponse creates the DTO for one question.
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:   q.ID,
		Text: q.Text,
		Type: q.Type,
	}
	for _, opt := range q.Options {
		resp.Options = append(resp.Options, OptionResponse{ID: opt.ID, Text: opt.Text})
	}
	return resp
}

// NewQuizResponse creates the DTO for one quiz, with questions when asked for.
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) QuizResponse {
	resp := QuizResponse{
		ID:          quiz.ID,
		UserID:      quiz.UserID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Thumbnail:   quiz.Thumbnail,
		IsPublic:    quiz.IsPublic,
		JoinCode:    quiz.CodeValue(),
		CreatedAt:   quiz.CreatedAt,
	}
	if includeQuestions {
		for i := range quiz.Questions {
			resp.Questions = append(resp.Questions, NewQuestionResponse(&quiz.Questions[i]))
		}
	}
	return resp
}

// NewQuizListResponse creates DTOs for a quiz slice without questions.
func NewQuizListResponse(quizzes []entity.Quiz) []QuizResponse {
	out := make([]QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, NewQuizResponse(&quizzes[i], false))
	}
	return out
}

// NewOwnedQuizListResponse creates DTOs for the owner's quiz list.
func NewOwnedQuizListResponse(rows []repository.OwnedQuizRow) []OwnedQuizResponse {
	out := make([]OwnedQuizResponse, 0, len(rows))
	for i := range rows {
		out = append(out, OwnedQuizResponse{
			QuizResponse:  NewQuizResponse(&rows[i].Quiz, false),
			QuestionCount: rows[i].QuestionCount,
		})
	}
	return out
}
