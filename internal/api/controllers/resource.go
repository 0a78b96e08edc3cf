package controllers

import (
	"errors"
	"net/http"

	"brandbase/internal/api/middleware"
	"brandbase/internal/services"

	"github.com/labstack/echo/v4"
)

// ResourceController exposes one owned entity per the dashboard's wire
// contract: GET lists with query-string filters, POST creates, PUT updates
// with the id in the body, DELETE takes the id in the body too. Success
// responses wrap the payload in the resource name ({"posts": [...]});
// failures are {"error": message}. Ownership mismatches and missing rows
// both come back as 404 "Not found".
type ResourceController[T any] struct {
	service  services.OwnedService[T]
	singular string
	plural   string

	// Filters maps allowed query parameters to column names, e.g.
	// "channelId" -> "channel_id". Anything not listed is ignored.
	Filters map[string]string
	// Searchable enables the ?search= parameter (contacts only).
	Searchable bool
}

// NewResourceController creates a controller wrapping responses in the given
// resource names.
func NewResourceController[T any](service services.OwnedService[T], singular, plural string) *ResourceController[T] {
	return &ResourceController[T]{
		service:  service,
		singular: singular,
		plural:   plural,
	}
}

type idBody struct {
	ID string `json:"id"`
}

// List handles GET: the caller's rows, newest first, optionally narrowed by
// equality filters.
func (c *ResourceController[T]) List(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)

	filters := make(map[string]interface{})
	for param, column := range c.Filters {
		if value := ctx.QueryParam(param); value != "" {
			filters[column] = value
		}
	}

	search := ""
	if c.Searchable {
		search = ctx.QueryParam("search")
	}

	entities, err := c.service.List(ctx.Request().Context(), userID, filters, search)
	if err != nil {
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{c.plural: entities})
}

// Create handles POST. The owner is always the caller; a userId in the body
// is overwritten.
func (c *ResourceController[T]) Create(ctx echo.Context) error {
	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := ctx.Validate(&entity); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(ctx)
	if err := c.service.Create(ctx.Request().Context(), userID, &entity); err != nil {
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]interface{}{c.singular: entity})
}

// Update handles PUT with the id in the body; non-zero fields are patched.
func (c *ResourceController[T]) Update(ctx echo.Context) error {
	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	id := entityID(&entity)
	if id == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "id is required"})
	}

	userID := middleware.GetUserID(ctx)
	updated, err := c.service.Update(ctx.Request().Context(), userID, id, &entity)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{c.singular: updated})
}

// Delete handles DELETE with the id in the body.
func (c *ResourceController[T]) Delete(ctx echo.Context) error {
	var body idBody
	if err := ctx.Bind(&body); err != nil || body.ID == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "id is required"})
	}

	userID := middleware.GetUserID(ctx)
	if err := c.service.Delete(ctx.Request().Context(), userID, body.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Not found"})
		}
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]bool{"success": true})
}

// RegisterRoutes mounts the four verbs on the given group.
func (c *ResourceController[T]) RegisterRoutes(g *echo.Group) {
	g.GET("", c.List)
	g.POST("", c.Create)
	g.PUT("", c.Update)
	g.DELETE("", c.Delete)
}
