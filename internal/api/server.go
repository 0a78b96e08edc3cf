package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-advanced-admin/admin"
	admingorm "github.com/go-advanced-admin/orm-gorm"
	adminecho "github.com/go-advanced-admin/web-echo"
	"golang.org/x/time/rate"

	apimw "brandbase/internal/api/middleware"
	"brandbase/internal/api/validator"
	"brandbase/internal/config"
	"brandbase/internal/models"
	"brandbase/internal/routes"

	console "brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB
}

var log = console.New("API-Server")

// NewServer @title Brandbase API
// @version 1.0
// @description Multi-tenant marketing workspace backend.
// @host localhost:8080
// @BasePath /api
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("30M"))

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	s := &Server{
		echo:   e,
		config: cfg,
		db:     db,
	}

	if err := models.CreateAdminFromEnv(db); err != nil {
		log.Warn("Warning: Failed to create admin account: %v", err)
	} else {
		log.Success("Admin account ready")
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Admin panel over the raw tables, gated to admins
	gormIntegrator := admingorm.NewIntegrator(db)
	adminGroup := e.Group("/panel")
	authMiddleware := apimw.NewAuthMiddleware()
	adminGroup.Use(authMiddleware.Middleware(), apimw.RequireAdmin())
	echoIntegrator := adminecho.NewIntegrator(adminGroup)

	permissionChecker := func(
		request admin.PermissionRequest, ctx interface{},
	) (bool, error) {
		// Route-level auth already restricts the panel to admins.
		return true, nil
	}

	adminPanel, err := admin.NewPanel(
		gormIntegrator, echoIntegrator, permissionChecker, nil,
	)
	if err != nil {
		_ = log.Error("Failed to create admin panel", err)
		return nil
	}

	_, err = adminPanel.RegisterApp(
		"Brandbase",
		"Brandbase Admin Panel",
		nil,
	)
	if err != nil {
		_ = log.Error("Failed to register admin panel app", err)
		return nil
	}

	routes.SetupAuthRoutes(s.echo, s.db, s.config)

	// Register routes
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = formatValidationErrors(e)
	default:
		message = http.StatusText(code)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "url":
			errMap[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "tier":
			errMap[field] = fmt.Sprintf("%s must be one of: basic, gold, enterprise", field)
		case "user_role":
			errMap[field] = fmt.Sprintf("%s must be either 'user' or 'admin'", field)
		case "platform":
			errMap[field] = fmt.Sprintf("%s must be a supported platform", field)
		case "post_status":
			errMap[field] = fmt.Sprintf("%s must be one of: draft, scheduled, published, failed", field)
		case "campaign_status":
			errMap[field] = fmt.Sprintf("%s must be one of: draft, active, paused, completed", field)
		case "contact_status":
			errMap[field] = fmt.Sprintf("%s must be one of: lead, prospect, customer, vip, churned", field)
		case "experiment_status":
			errMap[field] = fmt.Sprintf("%s must be one of: idea, active, paused, completed", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
