package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/belenos68/glucolife-app/internal/service"
	"github.com/belenos68/glucolife-app/internal/types"
)

// ReadingHandler handles standalone glucose reading requests
type ReadingHandler struct {
	glucoseService *service.GlucoseService
}

func NewReadingHandler(glucoseService *service.GlucoseService) *ReadingHandler {
	return &ReadingHandler{glucoseService: glucoseService}
}

// RegisterRoutes registers the glucose reading routes
func (h *ReadingHandler) RegisterRoutes(protected *gin.RouterGroup) {
	readings := protected.Group("/readings")
	{
		readings.POST("", h.Create)
		readings.GET("", h.List)
	}
}

func (h *ReadingHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reading, err := h.glucoseService.CreateReading(c.Request.Context(), userID, req.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reading"})
		return
	}

	c.JSON(http.StatusCreated, reading)
}

func (h *ReadingHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	readings, err := h.glucoseService.ListReadings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list readings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"readings": readings})
}
