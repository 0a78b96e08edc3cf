package models

import (
	"fmt"
	"time"
)

// SpecialDate is a static, non-owned calendar entry merged into per-user
// calendar results at read time. Nothing here is persisted.
type SpecialDate struct {
	Slug  string
	Title string
	Month time.Month
	Day   int
	Year  int
}

var specialDates2026 = []SpecialDate{
	{Slug: "new-years-day", Title: "New Year's Day", Month: time.January, Day: 1, Year: 2026},
	{Slug: "valentines-day", Title: "Valentine's Day", Month: time.February, Day: 14, Year: 2026},
	{Slug: "international-womens-day", Title: "International Women's Day", Month: time.March, Day: 8, Year: 2026},
	{Slug: "april-fools", Title: "April Fools' Day", Month: time.April, Day: 1, Year: 2026},
	{Slug: "earth-day", Title: "Earth Day", Month: time.April, Day: 22, Year: 2026},
	{Slug: "mothers-day", Title: "Mother's Day", Month: time.May, Day: 10, Year: 2026},
	{Slug: "fathers-day", Title: "Father's Day", Month: time.June, Day: 21, Year: 2026},
	{Slug: "independence-day", Title: "Independence Day", Month: time.July, Day: 4, Year: 2026},
	{Slug: "friendship-day", Title: "International Friendship Day", Month: time.July, Day: 30, Year: 2026},
	{Slug: "world-photography-day", Title: "World Photography Day", Month: time.August, Day: 19, Year: 2026},
	{Slug: "labor-day", Title: "Labor Day", Month: time.September, Day: 7, Year: 2026},
	{Slug: "halloween", Title: "Halloween", Month: time.October, Day: 31, Year: 2026},
	{Slug: "singles-day", Title: "Singles' Day", Month: time.November, Day: 11, Year: 2026},
	{Slug: "black-friday", Title: "Black Friday", Month: time.November, Day: 27, Year: 2026},
	{Slug: "cyber-monday", Title: "Cyber Monday", Month: time.November, Day: 30, Year: 2026},
	{Slug: "christmas", Title: "Christmas Day", Month: time.December, Day: 25, Year: 2026},
	{Slug: "new-years-eve", Title: "New Year's Eve", Month: time.December, Day: 31, Year: 2026},
}

// SpecialDatesFor returns the static special dates falling in the given
// month/year as synthetic, owner-less calendar events. IDs carry a
// "special-" prefix so clients never confuse them with stored rows.
func SpecialDatesFor(month time.Month, year int) []CalendarEvent {
	var result []CalendarEvent
	for _, sd := range specialDates2026 {
		if sd.Month != month || sd.Year != year {
			continue
		}
		result = append(result, CalendarEvent{
			Base: Base{
				ID: fmt.Sprintf("special-%s-%d", sd.Slug, sd.Year),
			},
			Title:     sd.Title,
			Type:      CalendarEventSpecial,
			StartDate: time.Date(sd.Year, sd.Month, sd.Day, 0, 0, 0, 0, time.UTC),
		})
	}
	return result
}
