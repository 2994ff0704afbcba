package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quizverse-api/internal/domain/entity"
	"github.com/yourusername/quizverse-api/internal/domain/repository"
	"github.com/yourusername/quizverse-api/internal/handler/dto"
	"github.com/yourusername/quizverse-api/internal/service"
)

// QuizHandler handles quiz authoring and owner-side requests.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// CreateQuiz handles POST /api/quizzes.
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var req service.CreateQuizInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, false))
}

// ListPublic handles GET /api/quizzes?page=&per_page=.
func (h *QuizHandler) ListPublic(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	quizzes, total, err := h.quizService.ListPublic(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedQuizResponse{
		Quizzes: dto.NewQuizListResponse(quizzes),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

// ListMine handles GET /api/quizzes/mine.
func (h *QuizHandler) ListMine(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	rows, err := h.quizService.ListOwned(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewOwnedQuizListResponse(rows)})
}

// GenerateJoinCode handles POST /api/quizzes/:id/code.
func (h *QuizHandler) GenerateJoinCode(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	code, err := h.quizService.GenerateJoinCode(userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "join_code": code})
}

// DeleteQuiz handles DELETE /api/quizzes/:id.
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	if err := h.quizService.DeleteQuiz(userID, quizID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}

// ListCompletions handles GET /api/quizzes/:id/completions (owner only).
func (h *QuizHandler) ListCompletions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)

	_, completions, err := h.quizService.ListQuizCompletions(userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"completions": completions})
}

// ExportCompletions handles GET /api/quizzes/:id/completions/export?format=csv|xlsx
// (owner only).
func (h *QuizHandler) ExportCompletions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")

	quiz, completions, err := h.quizService.ListQuizCompletions(userID, quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_completions_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, quiz, completions, filename)
	default:
		h.exportCSV(c, completions, filename)
	}
}

// exportCSV writes the completions as CSV with proper escaping of commas and
// quotes.
func (h *QuizHandler) exportCSV(c *gin.Context, completions []repository.OwnerNotificationRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM so Excel detects UTF-8.
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Player", "Score", "Total Questions", "Completed At"})
	for _, row := range completions {
		writer.Write([]string{
			sanitizeForExcel(row.Username),
			strconv.Itoa(row.Score),
			strconv.Itoa(row.TotalQuestions),
			row.CompletedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX writes the completions as an Excel sheet using a StreamWriter.
func (h *QuizHandler) exportXLSX(c *gin.Context, quiz *entity.Quiz, completions []repository.OwnerNotificationRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Completions"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Failed to create stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Player", "Score", "Total Questions", "Completed At"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Failed to write header row: %v", err)
	}

	for i, row := range completions {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			sanitizeForExcel(row.Username),
			row.Score,
			row.TotalQuestions,
			row.CompletedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, values); err != nil {
			log.Printf("[QuizHandler] Failed to write row %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Failed to flush stream writer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		return
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Failed to send Excel file for quiz %q: %v", quiz.Title, err)
	}
}

// sanitizeForExcel neutralizes cell values that Excel/LibreOffice would
// interpret as formulas.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
