package services

import (
	"context"
	"time"

	"brandbase/internal/models"

	"gorm.io/gorm"
)

// CalendarService is the one read path with merge logic: stored per-user
// events for a month window, plus the static special dates for that month.
type CalendarService struct {
	db *gorm.DB
}

func NewCalendarService(db *gorm.DB) *CalendarService {
	return &CalendarService{db: db}
}

// MonthWindow returns the inclusive [first instant, last instant) bounds of
// a month in UTC.
func MonthWindow(month time.Month, year int) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start, end
}

// ListMonth returns the caller's events whose start date falls inside the
// given month, merged with the matching special dates. Events from adjacent
// months are excluded even when their end date spills into the window.
func (s *CalendarService) ListMonth(ctx context.Context, userID string, month time.Month, year int) ([]models.CalendarEvent, error) {
	start, end := MonthWindow(month, year)

	events := make([]models.CalendarEvent, 0)
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, start, end).
		Order("start_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return append(events, models.SpecialDatesFor(month, year)...), nil
}
