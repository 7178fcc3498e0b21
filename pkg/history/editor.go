package history

import (
	"sparc/pkg/entry"
	"sparc/pkg/task"
)

// Key is a keyboard event delivered to the panel.
type Key struct {
	Name string
	Ctrl bool
	Meta bool
}

const (
	KeyEnter  = "Enter"
	KeyEscape = "Escape"
)

func (k Key) isSave() bool   { return k.Name == KeyEnter && (k.Ctrl || k.Meta) }
func (k Key) isCancel() bool { return k.Name == KeyEscape }

// editor holds the shadow copy of the row being edited. A zero editor is idle.
type editor struct {
	id       string
	original entry.Fields
	draft    entry.Fields
	errs     entry.FieldErrors
}

func (e *editor) active() bool { return e.id != "" }

func (e *editor) reset() { *e = editor{} }

// diffPatch returns the fields of draft that differ from original. The
// other-task label is always sent while the task is Other.
func diffPatch(original, draft entry.Fields) entry.Patch {
	var p entry.Patch
	if draft.Task != original.Task {
		p.Task = ptr(draft.Task)
	}
	if draft.OtherTask != original.OtherTask || task.IsOther(draft.Task) {
		p.OtherTask = ptr(draft.OtherTask)
	}
	if draft.Minutes != original.Minutes {
		p.Minutes = ptr(draft.Minutes)
	}
	switch {
	case draft.PatientCount == nil && original.PatientCount != nil:
		p.ClearPatientCount = true
	case draft.PatientCount != nil && (original.PatientCount == nil || *original.PatientCount != *draft.PatientCount):
		p.PatientCount = ptr(*draft.PatientCount)
	}
	if draft.IsTypicalDay != original.IsTypicalDay {
		p.IsTypicalDay = ptr(draft.IsTypicalDay)
	}
	if draft.Comment != original.Comment {
		p.Comment = ptr(draft.Comment)
	}
	return p
}

func ptr[T any](v T) *T { return &v }

func cloneFields(f entry.Fields) entry.Fields {
	if f.PatientCount != nil {
		f.PatientCount = ptr(*f.PatientCount)
	}
	return f
}
