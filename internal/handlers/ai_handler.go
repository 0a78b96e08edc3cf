package handlers

import (
	"net/http"

	"brandbase/internal/api/middleware"
	"brandbase/internal/services"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type AIHandler struct {
	service *services.AIService
	log     *logger.Logger
}

func NewAIHandler(service *services.AIService) *AIHandler {
	return &AIHandler{service: service, log: logger.New("AIHandler")}
}

type generateContentRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,platform"`
}

type editContentRequest struct {
	Content     string `json:"content" validate:"required"`
	Instruction string `json:"instruction" validate:"required"`
}

// Generate drafts post copy for a topic, steered by the caller's brand
// profile and recent published posts.
// @Summary Generate post content
// @Tags ai
// @Accept json
// @Produce json
// @Param request body generateContentRequest true "Topic and target platform"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /ai [post]
func (h *AIHandler) Generate(c echo.Context) error {
	var req generateContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	content, err := h.service.GenerateContent(c.Request().Context(), userID, req.Topic, req.Platform)
	if err != nil {
		_ = h.log.Error("Content generation failed", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"content": content})
}

// Edit rewrites existing copy under an instruction.
// @Summary Edit post content
// @Tags ai
// @Accept json
// @Produce json
// @Param request body editContentRequest true "Content and instruction"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /ai/edit [post]
func (h *AIHandler) Edit(c echo.Context) error {
	var req editContentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	userID := middleware.GetUserID(c)

	content, err := h.service.EditContent(c.Request().Context(), userID, req.Content, req.Instruction)
	if err != nil {
		_ = h.log.Error("Content edit failed", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]string{"content": content})
}
