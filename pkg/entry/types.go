package entry

import (
	"sparc/entities"
	"sparc/pkg/calendar"
)

// Input is a new entry as submitted by the quick-entry form.
type Input struct {
	Fields
	OccurredOn entities.Occurrence `json:"occurred_on"`
}

// Patch updates only the non-nil fields. ClearPatientCount sets the patient
// count back to null.
type Patch struct {
	Task              *string              `json:"task,omitempty"`
	OtherTask         *string              `json:"other_task,omitempty"`
	Minutes           *int                 `json:"minutes,omitempty"`
	PatientCount      *int                 `json:"patient_count,omitempty"`
	ClearPatientCount bool                 `json:"clear_patient_count,omitempty"`
	IsTypicalDay      *bool                `json:"is_typical_day,omitempty"`
	OccurredOn        *entities.Occurrence `json:"occurred_on,omitempty"`
	Comment           *string              `json:"comment,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Task == nil && p.OtherTask == nil && p.Minutes == nil && p.PatientCount == nil &&
		!p.ClearPatientCount && p.IsTypicalDay == nil && p.OccurredOn == nil && p.Comment == nil
}

// Apply merges the patch into f. OccurredOn is applied by the caller.
func (p Patch) Apply(f *Fields) {
	if p.Task != nil {
		f.Task = *p.Task
	}
	if p.OtherTask != nil {
		f.OtherTask = *p.OtherTask
	}
	if p.Minutes != nil {
		f.Minutes = *p.Minutes
	}
	if p.ClearPatientCount {
		f.PatientCount = nil
	}
	if p.PatientCount != nil {
		n := *p.PatientCount
		f.PatientCount = &n
	}
	if p.IsTypicalDay != nil {
		f.IsTypicalDay = *p.IsTypicalDay
	}
	if p.Comment != nil {
		f.Comment = *p.Comment
	}
}

// ListOptions narrows a List call. Task filters on the canonical task value.
type ListOptions struct {
	Range          calendar.Range
	Task           string
	IncludeDeleted bool
}
