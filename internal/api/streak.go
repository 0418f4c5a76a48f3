package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belenos68/glucolife-app/internal/service"
)

// StreakHandler handles activity streak requests
type StreakHandler struct {
	streakService *service.StreakService
}

func NewStreakHandler(streakService *service.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

// RegisterRoutes registers the streak routes
func (h *StreakHandler) RegisterRoutes(protected *gin.RouterGroup) {
	streak := protected.Group("/streak")
	{
		streak.GET("", h.Current)
		streak.POST("/activity", h.LogActivity)
	}
}

// Current returns the reconciled streak. A streak that lapsed before
// yesterday reads as zero.
func (h *StreakHandler) Current(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.streakService.Current(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load streak"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *StreakHandler) LogActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	record, err := h.streakService.LogActivity(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update streak"})
		return
	}

	c.JSON(http.StatusOK, record)
}
