package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/belenos68/glucolife-app/internal/middleware"
	"github.com/belenos68/glucolife-app/internal/service"
	"github.com/belenos68/glucolife-app/internal/types"
)

// MealHandler handles meal analysis, saving and history requests
type MealHandler struct {
	mealService *service.MealService
	advisor     service.IAdvisorService
	scanLimiter *middleware.RateLimiter
}

func NewMealHandler(mealService *service.MealService, advisor service.IAdvisorService, scanLimiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		advisor:     advisor,
		scanLimiter: scanLimiter,
	}
}

// RegisterRoutes registers the meal routes
func (h *MealHandler) RegisterRoutes(protected *gin.RouterGroup) {
	meals := protected.Group("/meals")
	{
		if h.scanLimiter != nil {
			meals.POST("/analyze", h.scanLimiter.RateLimitMiddleware(), h.Analyze)
		} else {
			meals.POST("/analyze", h.Analyze)
		}
		meals.POST("", h.Save)
		meals.GET("", h.List)
		meals.GET("/:id", h.Get)
		meals.DELETE("/:id", h.Delete)
		meals.GET("/drafts/:id", h.GetDraft)
		meals.DELETE("/drafts/:id", h.DeleteDraft)
	}
}

// Analyze sends a meal photo to the AI collaborator and stages the result
// as a draft the client can save or discard.
func (h *MealHandler) Analyze(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AnalyzeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "meal analysis is not available"})
		return
	}

	analysis, err := h.advisor.AnalyzeMeal(c.Request.Context(), req.ImageData, req.MimeType)
	if err != nil {
		log.Printf("meal analysis failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to analyze meal"})
		return
	}

	draft := &service.AnalysisDraft{
		UserID:   userID.String(),
		Analysis: *analysis,
	}
	if err := h.advisor.SaveDraft(c.Request.Context(), draft); err != nil {
		// The draft cache is a convenience; the analysis still goes out.
		log.Printf("failed to cache analysis draft: %v", err)
		c.JSON(http.StatusOK, gin.H{"analysis": analysis})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis, "draft_id": draft.ID})
}

func (h *MealHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.advisor.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *MealHandler) DeleteDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.advisor.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil || draft.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "draft not found"})
		return
	}

	if err := h.advisor.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "draft deleted"})
}

func (h *MealHandler) Save(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SaveMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal, err := h.mealService.SaveMeal(c.Request.Context(), userID, &req)
	if err != nil {
		log.Printf("failed to save meal: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}

	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	meals, err := h.mealService.ListMeals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, mealID)
	if errors.Is(err, service.ErrMealNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	err = h.mealService.DeleteMeal(c.Request.Context(), userID, mealID)
	if errors.Is(err, service.ErrMealNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}
