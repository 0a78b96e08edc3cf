package api

import (
	"net/http"

	"brandbase/internal/api/middleware"
	"brandbase/internal/api/registry"
	"brandbase/internal/handlers"
	"brandbase/internal/models"
	"brandbase/internal/routes"
	"brandbase/internal/services"

	_ "brandbase/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Brandbase API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Payment webhook stays outside the authenticated group; Stripe signs
	// its own requests.
	stripeHandler := handlers.NewStripeHandler(s.db, services.NewStripeService(s.config), s.config)
	s.echo.POST("/api/stripe/webhook", stripeHandler.Webhook)

	// Authenticated API group
	api := s.echo.Group("/api")
	auth := middleware.NewAuthMiddleware()
	api.Use(auth.Middleware())

	// Register CRUD routes for all owned entities
	registry.RegisterCRUDRoutes(api, s.db)

	routes.SetupMediaRoutes(api, s.db)

	// Content generation
	aiHandler := handlers.NewAIHandler(services.NewAIService(s.db, s.config))
	aiGroup := api.Group("/ai")
	aiGroup.Use(middleware.RequireFeature(models.FeatureAgent))
	aiGroup.POST("", aiHandler.Generate)
	aiGroup.POST("/edit", aiHandler.Edit)

	// Checkout
	api.POST("/stripe/checkout", stripeHandler.CreateCheckout)

	// Admin surface
	adminHandler := handlers.NewAdminHandler(s.db)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.PUT("/users", adminHandler.UpdateUser)
	adminGroup.DELETE("/users", adminHandler.DeleteUser)
}
