package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

// Occurrence is when an activity happened. Legacy rows carry a bare date,
// newer ones a full timestamp, some a wall-clock date-time with no zone.
// Each is kept in the form it arrived in.
type Occurrence struct {
	Time     time.Time
	DateOnly bool
	// Floating marks a date-time written without a zone. Time holds the
	// wall clock in UTC.
	Floating bool
}

// DateOf builds a date-only occurrence.
func DateOf(y int, m time.Month, d int) Occurrence {
	return Occurrence{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// At builds a date-time occurrence.
func At(t time.Time) Occurrence { return Occurrence{Time: t} }

// ParseOccurrence accepts YYYY-MM-DD, RFC3339 and zone-less date-times.
func ParseOccurrence(s string) (Occurrence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Occurrence{}, fmt.Errorf("empty occurrence")
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Occurrence{Time: t, DateOnly: true}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Occurrence{Time: t}, nil
	}
	if t, err := time.Parse(localTimeLayout, s); err == nil {
		return Occurrence{Time: t, Floating: true}, nil
	}
	return Occurrence{}, fmt.Errorf("invalid occurrence %q: want YYYY-MM-DD or RFC3339", s)
}

func (o Occurrence) IsZero() bool { return o.Time.IsZero() }

// Instant is the point in time used for ordering. Dates sort as local
// midnight and floating date-times as that wall clock in loc.
func (o Occurrence) Instant(loc *time.Location) time.Time {
	switch {
	case o.DateOnly:
		y, m, d := o.Time.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case o.Floating:
		y, m, d := o.Time.Date()
		hh, mm, ss := o.Time.Clock()
		return time.Date(y, m, d, hh, mm, ss, o.Time.Nanosecond(), loc)
	}
	return o.Time
}

// Date returns the calendar date in loc. Date-only and floating values are
// used verbatim.
func (o Occurrence) Date(loc *time.Location) (int, time.Month, int) {
	if o.DateOnly || o.Floating {
		return o.Time.Date()
	}
	return o.Time.In(loc).Date()
}

func (o Occurrence) String() string {
	if o.IsZero() {
		return ""
	}
	switch {
	case o.DateOnly:
		return o.Time.Format(dateLayout)
	case o.Floating:
		return o.Time.Format(localTimeLayout)
	}
	return o.Time.Format(time.RFC3339)
}

func (o Occurrence) MarshalJSON() ([]byte, error) {
	if o.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(o.String())
}

func (o *Occurrence) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*o = Occurrence{}
		return nil
	}
	v, err := ParseOccurrence(*s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Value stores the occurrence as text so both forms survive a round trip.
func (o Occurrence) Value() (driver.Value, error) {
	if o.IsZero() {
		return nil, nil
	}
	return o.String(), nil
}

func (o *Occurrence) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = Occurrence{}
		return nil
	case time.Time:
		*o = Occurrence{Time: v}
		return nil
	case []byte:
		return o.scanString(string(v))
	case string:
		return o.scanString(v)
	default:
		return fmt.Errorf("occurrence: unsupported scan type %T", src)
	}
}

func (o *Occurrence) scanString(s string) error {
	if strings.TrimSpace(s) == "" {
		*o = Occurrence{}
		return nil
	}
	v, err := ParseOccurrence(s)
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// GormDataType keeps the column as TEXT.
func (Occurrence) GormDataType() string { return "text" }
