// Package export serializes the visible entries for download.
package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"sparc/entities"
	"sparc/pkg/calendar"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	HTML Format = "html"
)

// Header is the fixed column order shared by every format.
var Header = []string{
	"Date",
	"Task",
	"Other Task",
	"Minutes",
	"Patient Count",
	"Typical Day",
	"Comment",
	"Created At",
	"Updated At",
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case CSV, XLSX, HTML:
		return Format(s), nil
	case "":
		return CSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case HTML:
		return "text/html; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns e.g. sparc-entries-2026-10-19.csv.
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("sparc-entries-%s.%s", now.Format("2006-01-02"), f)
}

// Write dispatches to the writer for f.
func Write(w io.Writer, f Format, entries []entities.TimeEntry, loc *time.Location) error {
	switch f {
	case CSV:
		return WriteCSV(w, entries, loc)
	case XLSX:
		return WriteXLSX(w, entries, loc)
	case HTML:
		return WriteHTML(w, entries, loc)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Row renders one entry in Header order.
func Row(e entities.TimeEntry, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}
	patients := ""
	if e.PatientCount != nil {
		patients = strconv.Itoa(*e.PatientCount)
	}
	typical := "No"
	if e.IsTypicalDay {
		typical = "Yes"
	}
	return []string{
		calendar.DayOf(e.OccurredOn, loc).String(),
		e.Task,
		e.OtherTask,
		strconv.Itoa(e.Minutes),
		patients,
		typical,
		e.Comment,
		stamp(e.CreatedAt, loc),
		stamp(e.UpdatedAt, loc),
	}
}

func stamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(time.RFC3339)
}
