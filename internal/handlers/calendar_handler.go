package handlers

import (
	"net/http"
	"strconv"
	"time"

	"brandbase/internal/api/middleware"
	"brandbase/internal/services"
	"brandbase/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

type CalendarHandler struct {
	service *services.CalendarService
	log     *logger.Logger
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service, log: logger.New("CalendarHandler")}
}

// ListMonth returns the caller's events for ?month=&year= merged with the
// static special dates for that month. Defaults to the current month.
func (h *CalendarHandler) ListMonth(c echo.Context) error {
	now := time.Now()

	month := int(now.Month())
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "month must be 1-12"})
		}
		month = parsed
	}

	year := now.Year()
	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "year must be a number"})
		}
		year = parsed
	}

	userID := middleware.GetUserID(c)
	events, err := h.service.ListMonth(c.Request().Context(), userID, time.Month(month), year)
	if err != nil {
		_ = h.log.Error("Failed to list calendar events", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"events": events})
}
