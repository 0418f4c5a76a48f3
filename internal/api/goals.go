package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belenos68/glucolife-app/internal/scoring"
	"github.com/belenos68/glucolife-app/internal/service"
	"github.com/belenos68/glucolife-app/internal/types"
)

// GoalHandler handles reduction-goal requests
type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// RegisterRoutes registers the goal routes
func (h *GoalHandler) RegisterRoutes(protected *gin.RouterGroup) {
	goals := protected.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("/active", h.Active)
		goals.GET("/active/trend", h.Trend)
		goals.DELETE("/active", h.Abandon)
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, &req)
	if errors.Is(err, service.ErrGoalActive) {
		c.JSON(http.StatusConflict, gin.H{"error": "an active goal already exists"})
		return
	}
	if err != nil {
		log.Printf("failed to create goal: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create goal"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// Active returns the current goal together with its computed progress.
func (h *GoalHandler) Active(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goal, progress, err := h.goalService.Progress(c.Request.Context(), userID)
	if errors.Is(err, service.ErrNoActiveGoal) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active goal"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal, "progress": progress})
}

// Trend returns the cumulative score series since the goal started. The
// series is empty when fewer than two meals exist or the goal is already
// completed.
func (h *GoalHandler) Trend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	points, err := h.goalService.Trend(c.Request.Context(), userID)
	if errors.Is(err, service.ErrNoActiveGoal) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active goal"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trend"})
		return
	}

	if points == nil {
		points = []scoring.TrendPoint{}
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (h *GoalHandler) Abandon(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	err := h.goalService.AbandonGoal(c.Request.Context(), userID)
	if errors.Is(err, service.ErrNoActiveGoal) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active goal"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to abandon goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal abandoned"})
}
