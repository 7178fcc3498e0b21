package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparc/pkg/task"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{task.Emails, task.Emails, true},
		{"Patient Care – Prospective Audit & Feedback", task.ProspectiveAudit, true},
		{"  other - SPECIFY in comments ", task.Other, true},
		{"paf", task.ProspectiveAudit, true},
		{"EMAIL", task.Emails, true},
		{"lunch", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := task.Parse(tt.in)
		assert.Equal(t, tt.ok, ok, "Parse(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestCategories(t *testing.T) {
	assert.True(t, task.IsPatientCare(task.Consults))
	assert.False(t, task.IsPatientCare(task.Meetings))
	assert.True(t, task.IsOther(task.Other))
	assert.False(t, task.IsOther(task.Research))
}

func TestAllIsCopy(t *testing.T) {
	a := task.All()
	require.Len(t, a, 12)
	a[0] = "mutated"
	assert.Equal(t, task.ProspectiveAudit, task.All()[0])
	for code, v := range task.LegacyCodes() {
		assert.True(t, task.Valid(v), "legacy code %q maps to unknown task", code)
	}
}
