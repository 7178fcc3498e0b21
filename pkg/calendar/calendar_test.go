package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sparc/entities"
	"sparc/pkg/calendar"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		day        calendar.Day
		wantMonday calendar.Day
	}{
		// 2026-02-27 is a Friday.
		{calendar.NewDay(2026, 2, 27), calendar.NewDay(2026, 2, 23)},
		{calendar.NewDay(2026, 2, 23), calendar.NewDay(2026, 2, 23)},
		// Sunday belongs to the week that started six days earlier.
		{calendar.NewDay(2026, 3, 1), calendar.NewDay(2026, 2, 23)},
		// Across a year boundary.
		{calendar.NewDay(2027, 1, 1), calendar.NewDay(2026, 12, 28)},
	}
	for _, tt := range tests {
		mon, sun := calendar.WeekBounds(tt.day)
		assert.Equal(t, tt.wantMonday, mon, "monday of %s", tt.day)
		assert.Equal(t, tt.wantMonday.AddDays(6), sun, "sunday of %s", tt.day)
	}
}

func TestDayOfUsesLocationForDateTimes(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 02:30 UTC is still the previous evening in New York.
	o := entities.At(time.Date(2026, 10, 20, 2, 30, 0, 0, time.UTC))
	assert.Equal(t, calendar.NewDay(2026, 10, 19), calendar.DayOf(o, ny))
	assert.Equal(t, calendar.NewDay(2026, 10, 20), calendar.DayOf(o, time.UTC))

	d := entities.DateOf(2026, 10, 20)
	assert.Equal(t, calendar.NewDay(2026, 10, 20), calendar.DayOf(d, ny))
}

func TestWithin(t *testing.T) {
	from, to := calendar.NewDay(2026, 10, 19), calendar.NewDay(2026, 10, 25)
	assert.True(t, from.Within(from, to))
	assert.True(t, to.Within(from, to))
	assert.False(t, to.AddDays(1).Within(from, to))
	assert.False(t, from.AddDays(-1).Within(from, to))
}

func TestISOWeekLabel(t *testing.T) {
	assert.Equal(t, "2026-W09", calendar.ISOWeekLabel(time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)))
}

func TestLoadLocationFallback(t *testing.T) {
	loc, err := calendar.LoadLocation("Not/AZone")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestRangeContains(t *testing.T) {
	// 2026-10-21 is a Wednesday.
	today := calendar.NewDay(2026, 10, 21)
	yesterday := today.AddDays(-1)
	lastWeek := today.AddDays(-8)

	assert.True(t, calendar.RangeToday.Contains(today, today))
	assert.False(t, calendar.RangeToday.Contains(yesterday, today))

	assert.True(t, calendar.RangeWeek.Contains(today, today))
	assert.True(t, calendar.RangeWeek.Contains(yesterday, today))
	assert.False(t, calendar.RangeWeek.Contains(lastWeek, today))

	assert.True(t, calendar.RangeAll.Contains(lastWeek, today))

	assert.Equal(t, calendar.RangeWeek, calendar.ParseRange("bogus", calendar.RangeWeek))
	assert.Equal(t, calendar.RangeToday, calendar.ParseRange("today", calendar.RangeWeek))
}
