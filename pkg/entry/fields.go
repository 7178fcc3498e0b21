package entry

import (
	"strings"

	"sparc/entities"
	"sparc/pkg/task"
)

const (
	MinMinutes = 1
	MaxMinutes = 480
)

// Fields is the user-editable part of a time entry. The quick-entry form and
// the inline editor both validate through it.
type Fields struct {
	Task         string `json:"task"`
	OtherTask    string `json:"other_task"`
	Minutes      int    `json:"minutes"`
	PatientCount *int   `json:"patient_count"`
	IsTypicalDay bool   `json:"is_typical_day"`
	Comment      string `json:"comment"`
}

// FieldsOf copies the editable fields out of an entry.
func FieldsOf(e *entities.TimeEntry) Fields {
	f := Fields{
		Task:         e.Task,
		OtherTask:    e.OtherTask,
		Minutes:      e.Minutes,
		IsTypicalDay: e.IsTypicalDay,
		Comment:      e.Comment,
	}
	if e.PatientCount != nil {
		n := *e.PatientCount
		f.PatientCount = &n
	}
	return f
}

type rule struct {
	field string
	check func(f *Fields) string
}

// schema runs in order; the first failing rule per field wins.
var schema = []rule{
	{"task", func(f *Fields) string {
		if strings.TrimSpace(f.Task) == "" {
			return "task is required"
		}
		if !task.Valid(f.Task) {
			return "unknown task"
		}
		return ""
	}},
	{"other_task", func(f *Fields) string {
		if task.IsOther(f.Task) && f.OtherTask == "" {
			return "describe the activity when task is Other"
		}
		return ""
	}},
	{"minutes", func(f *Fields) string {
		if f.Minutes < MinMinutes || f.Minutes > MaxMinutes {
			return "minutes must be between 1 and 480"
		}
		return ""
	}},
	{"patient_count", func(f *Fields) string {
		if !task.IsPatientCare(f.Task) {
			return ""
		}
		if f.PatientCount == nil {
			return "patient count is required for patient care tasks"
		}
		if *f.PatientCount < 0 {
			return "patient count cannot be negative"
		}
		return ""
	}},
}

// Normalize canonicalises the task, trims text and drops values that do not
// apply to the selected task.
func (f *Fields) Normalize() {
	if t, ok := task.Parse(f.Task); ok {
		f.Task = t
	}
	f.OtherTask = strings.TrimSpace(f.OtherTask)
	f.Comment = strings.TrimSpace(f.Comment)
	if f.Task != "" && task.Valid(f.Task) {
		if !task.IsOther(f.Task) {
			f.OtherTask = ""
		}
		if !task.IsPatientCare(f.Task) {
			f.PatientCount = nil
		}
	}
}

// Validate checks the save-time invariants. It does not modify f.
func (f Fields) Validate() FieldErrors {
	errs := FieldErrors{}
	for _, r := range schema {
		if _, seen := errs[r.field]; seen {
			continue
		}
		if msg := r.check(&f); msg != "" {
			errs[r.field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Check normalizes f in place and returns a *ValidationError when invalid.
func Check(f *Fields) error {
	f.Normalize()
	if errs := f.Validate(); errs != nil {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Apply writes the fields onto an entry.
func (f Fields) Apply(e *entities.TimeEntry) {
	e.Task = f.Task
	e.OtherTask = f.OtherTask
	e.Minutes = f.Minutes
	e.PatientCount = f.PatientCount
	e.IsTypicalDay = f.IsTypicalDay
	e.Comment = f.Comment
}
