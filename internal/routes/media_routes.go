package routes

import (
	"brandbase/internal/api/middleware"
	"brandbase/internal/handlers"
	"brandbase/internal/models"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupMediaRoutes(api *echo.Group, db *gorm.DB) {
	log := logger.New("media_routes")

	mediaHandler := handlers.NewMediaHandler(db)

	mediaGroup := api.Group("/media")
	mediaGroup.Use(middleware.RequireFeature(models.FeatureMedia))

	mediaGroup.GET("", mediaHandler.List)
	mediaGroup.POST("", mediaHandler.Upload)
	mediaGroup.POST("/import", mediaHandler.Import)
	mediaGroup.DELETE("", mediaHandler.Delete)

	log.Success("Media routes initialized successfully")
}
