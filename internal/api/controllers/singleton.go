package controllers

import (
	"errors"
	"net/http"

	"brandbase/internal/api/middleware"
	"brandbase/internal/services"

	"github.com/labstack/echo/v4"
)

// SingletonController serves one-per-user resources (brand profile, AI
// settings): GET returns the row or null, POST upserts. Calling POST twice
// updates; it can never create a second row.
type SingletonController[T any] struct {
	service services.SingletonService[T]
	name    string

	// BeforeUpsert lets the registry hook request-specific handling in
	// (e.g. encrypting the AI API key) before the write.
	BeforeUpsert func(ctx echo.Context, entity *T) error
}

func NewSingletonController[T any](service services.SingletonService[T], name string) *SingletonController[T] {
	return &SingletonController[T]{service: service, name: name}
}

func (c *SingletonController[T]) Get(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)

	entity, err := c.service.Get(ctx.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.JSON(http.StatusOK, map[string]interface{}{c.name: nil})
		}
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{c.name: entity})
}

func (c *SingletonController[T]) Upsert(ctx echo.Context) error {
	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := ctx.Validate(&entity); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if c.BeforeUpsert != nil {
		if err := c.BeforeUpsert(ctx, &entity); err != nil {
			return internalError(ctx, err)
		}
	}

	userID := middleware.GetUserID(ctx)
	saved, err := c.service.Upsert(ctx.Request().Context(), userID, &entity)
	if err != nil {
		return internalError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]interface{}{c.name: saved})
}

func (c *SingletonController[T]) RegisterRoutes(g *echo.Group) {
	g.GET("", c.Get)
	g.POST("", c.Upsert)
}
