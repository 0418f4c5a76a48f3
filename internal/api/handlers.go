package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/config"
	"github.com/belenos68/glucolife-app/internal/database"
	"github.com/belenos68/glucolife-app/internal/middleware"
	"github.com/belenos68/glucolife-app/internal/scoring"
	"github.com/belenos68/glucolife-app/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "GlucoViva API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes wires services, middleware and handlers onto the router.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, advisor service.IAdvisorService, cfg *config.Config) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Rate limiting needs Redis; without it the analyze endpoint runs
	// unthrottled rather than not at all.
	var scanLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
	} else {
		scanLimiter = middleware.NewMealAnalysisRateLimiter(redisClient)
	}

	calc := scoring.NewCalculator(nil)
	streakService := service.NewStreakService(db, nil)
	achievementService := service.NewAchievementService(db, nil)
	mealService := service.NewMealService(db, calc, advisor, streakService, achievementService, nil)
	goalService := service.NewGoalService(db, nil)
	glucoseService := service.NewGlucoseService(db, nil)

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	NewAuthHandler(authService).RegisterRoutes(v1, protected)
	NewMealHandler(mealService, advisor, scanLimiter).RegisterRoutes(protected)
	NewGoalHandler(goalService).RegisterRoutes(protected)
	NewReadingHandler(glucoseService).RegisterRoutes(protected)
	NewStreakHandler(streakService).RegisterRoutes(protected)
	NewAchievementHandler(achievementService).RegisterRoutes(protected)
	NewDashboardHandler(mealService, goalService, streakService, achievementService).RegisterRoutes(protected)

	if scanLimiter != nil {
		RegisterRateLimitRoutes(protected, scanLimiter)
	}
}

// RegisterRateLimitRoutes exposes the remaining analyze quota so clients can
// grey out the scan button before hitting the limit.
func RegisterRateLimitRoutes(protected *gin.RouterGroup, scanLimiter *middleware.RateLimiter) {
	protected.GET("/rate-limits/meal-analysis", func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		remaining, resetTime, err := scanLimiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check rate limit"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"limit":      scanLimiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     "1h",
		})
	})
}
