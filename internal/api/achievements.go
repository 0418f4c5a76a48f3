package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belenos68/glucolife-app/internal/service"
)

// AchievementHandler handles achievement catalog requests
type AchievementHandler struct {
	achievementService *service.AchievementService
}

func NewAchievementHandler(achievementService *service.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService}
}

// RegisterRoutes registers the achievement routes
func (h *AchievementHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/achievements", h.List)
}

func (h *AchievementHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statuses, err := h.achievementService.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list achievements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": statuses})
}
