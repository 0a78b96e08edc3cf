package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSpecialDatesFor_NovemberHasRetailTrio(t *testing.T) {
	dates := SpecialDatesFor(time.November, 2026)
	require.Len(t, dates, 3)

	titles := make([]string, 0, len(dates))
	for _, d := range dates {
		titles = append(titles, d.Title)
	}
	require.Contains(t, titles, "Black Friday")
	require.Contains(t, titles, "Cyber Monday")
	require.Contains(t, titles, "Singles' Day")
}

func TestSpecialDatesFor_SyntheticShape(t *testing.T) {
	dates := SpecialDatesFor(time.December, 2026)
	require.NotEmpty(t, dates)

	for _, d := range dates {
		require.Regexp(t, `^special-[a-z-]+-2026$`, d.ID)
		require.Equal(t, CalendarEventSpecial, d.Type)
		require.Empty(t, d.UserID, "special dates are owner-less")
		require.Equal(t, time.December, d.StartDate.Month())
		require.Equal(t, 2026, d.StartDate.Year())
		require.Equal(t, time.UTC, d.StartDate.Location())
	}
}

func TestSpecialDatesFor_OtherYearIsEmpty(t *testing.T) {
	require.Empty(t, SpecialDatesFor(time.December, 2031))
}

func TestSpecialDatesFor_DeterministicIDs(t *testing.T) {
	first := SpecialDatesFor(time.October, 2026)
	second := SpecialDatesFor(time.October, 2026)
	require.Equal(t, first, second)
}
