// Package calendar defines the one "local calendar day" used for range
// filters: the configured location's date, with date-only values taken as-is.
package calendar

import (
	"fmt"
	"time"

	"sparc/entities"
)

// Clock returns the current time. Tests pass a fixed one.
type Clock func() time.Time

// Day is a calendar date with no time or zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDay(y int, m time.Month, d int) Day {
	return DayOfTime(time.Date(y, m, d, 0, 0, 0, 0, time.UTC), time.UTC)
}

// DayOfTime returns the date of t as seen in loc.
func DayOfTime(t time.Time, loc *time.Location) Day {
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

// DayOf returns the calendar date of an occurrence.
func DayOf(o entities.Occurrence, loc *time.Location) Day {
	y, m, d := o.Date(loc)
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Day) AddDays(n int) Day {
	return DayOfTime(d.Time(time.UTC).AddDate(0, 0, n), time.UTC)
}

func (d Day) Weekday() time.Weekday { return d.Time(time.UTC).Weekday() }

func (d Day) Before(o Day) bool { return d.Time(time.UTC).Before(o.Time(time.UTC)) }

func (d Day) After(o Day) bool { return o.Before(d) }

func (d Day) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day) }

// Within reports whether d lies in [from, to] inclusive.
func (d Day) Within(from, to Day) bool { return !d.Before(from) && !d.After(to) }

// WeekBounds returns the Monday of the week containing d and the Sunday six
// days later.
func WeekBounds(d Day) (Day, Day) {
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := d.AddDays(-(wd - 1))
	return monday, monday.AddDays(6)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// Range is a relative date window anchored on "today".
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeAll   Range = "all"
)

// ParseRange returns the range named by s, or def when s is unknown.
func ParseRange(s string, def Range) Range {
	switch Range(s) {
	case RangeToday, RangeWeek, RangeAll:
		return Range(s)
	}
	return def
}

// Contains reports whether d falls inside r for the given today.
func (r Range) Contains(d, today Day) bool {
	switch r {
	case RangeToday:
		return d == today
	case RangeWeek:
		from, to := WeekBounds(today)
		return d.Within(from, to)
	default:
		return true
	}
}
