package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belenos68/glucolife-app/internal/models"
	"github.com/belenos68/glucolife-app/internal/scoring"
	"github.com/belenos68/glucolife-app/internal/service"
)

// DashboardHandler assembles the home-screen payload in one request
type DashboardHandler struct {
	mealService        *service.MealService
	goalService        *service.GoalService
	streakService      *service.StreakService
	achievementService *service.AchievementService
}

func NewDashboardHandler(mealService *service.MealService, goalService *service.GoalService, streakService *service.StreakService, achievementService *service.AchievementService) *DashboardHandler {
	return &DashboardHandler{
		mealService:        mealService,
		goalService:        goalService,
		streakService:      streakService,
		achievementService: achievementService,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard", h.Get)
}

// Dashboard is the aggregate home-screen payload.
type Dashboard struct {
	RecentMeals  []models.Meal     `json:"recent_meals"`
	Goal         *models.Goal      `json:"goal,omitempty"`
	Progress     *scoring.Progress `json:"progress,omitempty"`
	Streak       int               `json:"streak"`
	MealsLogged  int               `json:"meals_logged"`
	Unlocked     int               `json:"achievements_unlocked"`
	AverageScore int               `json:"average_score"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	meals, err := h.mealService.ListMeals(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	dashboard := Dashboard{
		RecentMeals: meals,
		MealsLogged: len(meals),
	}
	if len(meals) > 5 {
		dashboard.RecentMeals = meals[:5]
	}

	scored := make([]scoring.ScoredMeal, len(meals))
	for i, m := range meals {
		scored[i] = scoring.ScoredMeal{Timestamp: m.LoggedAt, Score: m.GlycemicScore}
	}
	if len(meals) > 0 {
		dashboard.AverageScore = scoring.AverageScore(scored, 0)
	}

	goal, progress, err := h.goalService.Progress(ctx, userID)
	if err == nil {
		dashboard.Goal = goal
		dashboard.Progress = progress
	} else if !errors.Is(err, service.ErrNoActiveGoal) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	record, err := h.streakService.Current(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	dashboard.Streak = record.Streak

	statuses, err := h.achievementService.List(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}
	for _, s := range statuses {
		if s.Unlocked {
			dashboard.Unlocked++
		}
	}

	c.JSON(http.StatusOK, dashboard)
}
