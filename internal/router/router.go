package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/belenos68/glucolife-app/config"
	"github.com/belenos68/glucolife-app/internal/api"
	"github.com/belenos68/glucolife-app/internal/middleware"
	"github.com/belenos68/glucolife-app/internal/service"
)

// SetupRouter builds the Gin engine with global middleware and all routes.
func SetupRouter(db *gorm.DB, authService service.IAuthService, advisor service.IAdvisorService, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	api.RegisterRoutes(router, db, authService, advisor, cfg)

	return router
}
