package routes

import (
	"brandbase/internal/api/middleware"
	"brandbase/internal/config"
	"brandbase/internal/handlers"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db)

	base := e.Group("/api")

	// Public auth routes group
	auth := base.Group("/auth")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/google/callback", authHandler.GoogleAuthCallback)
	auth.POST("/password-reset", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/verify", authHandler.VerifyResetCode)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected auth routes (require authentication)
	protectedAuth := auth.Group("")
	authMiddleware := middleware.NewAuthMiddleware()
	protectedAuth.Use(authMiddleware.Middleware())

	protectedAuth.GET("/me", authHandler.GetMe)
	protectedAuth.POST("/select-tier", authHandler.SelectTier)
}
