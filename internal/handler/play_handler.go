package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizverse-api/internal/handler/dto"
	"github.com/yourusername/quizverse-api/internal/service"
)

// PlayHandler handles the player side of a quiz: joining, fetching questions,
// answering and completing.
type PlayHandler struct {
	playService *service.PlayService
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(playService *service.PlayService) *PlayHandler {
	return &PlayHandler{playService: playService}
}

// JoinRequest represents a join-by-code request.
type JoinRequest struct {
	Code string `json:"code" binding:"required"`
}

// SubmitAnswerRequest represents one answer submission. The answer is the
// option id as a decimal string for multiple choice, the literal "true" or
// "false" for true/false, and the free text otherwise.
type SubmitAnswerRequest struct {
	QuestionID    uint   `json:"question_id" binding:"required"`
	QuestionIndex *int   `json:"question_index" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
}

// CompleteRequest carries the client's aggregate for cross-checking. The
// stored score is recomputed server-side regardless.
type CompleteRequest struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"total_questions" binding:"required"`
}

// Join handles POST /api/play/join.
func (h *PlayHandler) Join(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.playService.ResolveQuizByCode(userID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": dto.NewQuizResponse(quiz, false)})
}

// GetPlayQuiz handles GET /api/play/quizzes/:id. The payload carries the
// ordered question list without any correctness information.
func (h *PlayHandler) GetPlayQuiz(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	quiz, questions, err := h.playService.StartPlay(userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	questionDTOs := make([]dto.QuestionResponse, 0, len(questions))
	for i := range questions {
		questionDTOs = append(questionDTOs, dto.NewQuestionResponse(&questions[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"quiz":      dto.NewQuizResponse(quiz, false),
		"questions": questionDTOs,
	})
}

// SubmitAnswer handles POST /api/play/quizzes/:id/answers.
func (h *PlayHandler) SubmitAnswer(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.playService.SubmitAnswer(userID, quizID, req.QuestionID, *req.QuestionIndex, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"is_correct":     result.IsCorrect,
		"correct_answer": result.CorrectAnswer,
		"next_question":  result.NextQuestion,
	})
}

// Complete handles POST /api/play/quizzes/:id/complete.
func (h *PlayHandler) Complete(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completion, err := h.playService.CompleteQuiz(userID, quizID, req.Score, req.TotalQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"score":           completion.Score,
		"total_questions": completion.TotalQuestions,
		"completed_at":    completion.CompletedAt,
	})
}

// Results handles GET /api/play/quizzes/:id/results.
func (h *PlayHandler) Results(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	reviews, score, total, err := h.playService.Results(userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"score":           score,
		"total_questions": total,
		"answers":         reviews,
	})
}
