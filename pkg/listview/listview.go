// Package listview derives the visible, ordered subset of time entries from
// the full set and the user's view parameters.
package listview

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"sparc/entities"
	"sparc/pkg/calendar"
	"sparc/pkg/task"
)

type SortField string

const (
	SortOccurredOn SortField = "occurredOn"
	SortTask       SortField = "task"
	SortMinutes    SortField = "minutes"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// TaskSet is a set of canonical task values. Empty means no restriction.
type TaskSet map[string]struct{}

func NewTaskSet(tasks ...string) TaskSet {
	s := TaskSet{}
	for _, t := range tasks {
		s[t] = struct{}{}
	}
	return s
}

func (s TaskSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members in enumeration order.
func (s TaskSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for _, t := range task.All() {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TaskSet) Clone() TaskSet {
	c := make(TaskSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

type Params struct {
	DateRange     calendar.Range
	SelectedTasks TaskSet
	Search        string
	SortField     SortField
	SortDirection Direction
}

func DefaultParams() Params {
	return Params{
		DateRange:     calendar.RangeWeek,
		SelectedTasks: TaskSet{},
		SortField:     SortOccurredOn,
		SortDirection: Desc,
	}
}

// Identity returns parameters that filter nothing and keep p's ordering.
func Identity(p Params) Params {
	return Params{DateRange: calendar.RangeAll, SelectedTasks: TaskSet{}, SortField: p.SortField, SortDirection: p.SortDirection}
}

// Derive filters and sorts entries. It never modifies the input slice and
// evaluates "today" once per call.
func Derive(entries []entities.TimeEntry, p Params, now time.Time, loc *time.Location) []entities.TimeEntry {
	if loc == nil {
		loc = time.Local
	}
	today := calendar.DayOfTime(now, loc)
	query := strings.ToLower(strings.TrimSpace(p.Search))

	out := make([]entities.TimeEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDeleted() {
			continue
		}
		if !p.DateRange.Contains(calendar.DayOf(e.OccurredOn, loc), today) {
			continue
		}
		if len(p.SelectedTasks) > 0 && !p.SelectedTasks.Has(e.Task) {
			continue
		}
		if query != "" && !matches(e, query) {
			continue
		}
		out = append(out, e)
	}

	less := comparator(p.SortField, loc)
	desc := p.SortDirection == Desc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out
}

func matches(e entities.TimeEntry, lowerQuery string) bool {
	if e.Comment != "" && strings.Contains(strings.ToLower(e.Comment), lowerQuery) {
		return true
	}
	return e.OtherTask != "" && strings.Contains(strings.ToLower(e.OtherTask), lowerQuery)
}

func comparator(f SortField, loc *time.Location) func(a, b *entities.TimeEntry) bool {
	switch f {
	case SortTask:
		return func(a, b *entities.TimeEntry) bool { return taskLabel(a) < taskLabel(b) }
	case SortMinutes:
		return func(a, b *entities.TimeEntry) bool { return a.Minutes < b.Minutes }
	default:
		return func(a, b *entities.TimeEntry) bool {
			return a.OccurredOn.Instant(loc).Before(b.OccurredOn.Instant(loc))
		}
	}
}

func taskLabel(e *entities.TimeEntry) string {
	if e.OtherTask != "" {
		return strings.ToLower(e.OtherTask)
	}
	return strings.ToLower(e.Task)
}

// ParseParams reads view parameters from a query string. Unknown values fall
// back to the defaults; unknown tasks are dropped.
func ParseParams(q url.Values) Params {
	p := DefaultParams()
	p.DateRange = calendar.ParseRange(q.Get("range"), p.DateRange)
	for _, raw := range q["task"] {
		if t, ok := task.Parse(raw); ok {
			p.SelectedTasks[t] = struct{}{}
		}
	}
	p.Search = q.Get("q")
	switch SortField(q.Get("sort")) {
	case SortOccurredOn, SortTask, SortMinutes:
		p.SortField = SortField(q.Get("sort"))
	}
	switch Direction(q.Get("dir")) {
	case Asc, Desc:
		p.SortDirection = Direction(q.Get("dir"))
	}
	return p
}

// HasViewParams reports whether q carries any view parameter.
func HasViewParams(q url.Values) bool {
	for _, k := range []string{"range", "task", "q", "sort", "dir"} {
		if _, ok := q[k]; ok {
			return true
		}
	}
	return false
}
