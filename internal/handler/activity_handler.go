package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizverse-api/internal/service"
)

// ActivityHandler handles the per-user activity feed.
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// Feed handles GET /api/activity.
func (h *ActivityHandler) Feed(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	feed, err := h.activityService.Feed(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// Clear handles DELETE /api/activity.
func (h *ActivityHandler) Clear(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if err := h.activityService.Clear(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity history cleared"})
}
