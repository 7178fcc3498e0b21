// Package task holds the closed enumeration of stewardship activity
// categories. The same values are validated on input and persisted as-is.
package task

import (
	"strings"
)

const (
	ProspectiveAudit  = "Patient Care - Prospective Audit & Feedback"
	Preauthorization  = "Patient Care - Preauthorization"
	Consults          = "Patient Care - Consults & Curbside Questions"
	CultureFollowUp   = "Patient Care - Culture & Rapid Diagnostic Follow-up"
	DoseOptimization  = "Patient Care - IV to PO / Dose Optimization"
	Emails            = "Administrative - Emails"
	Meetings          = "Administrative - Meetings"
	Guidelines        = "Administrative - Guidelines & Policies"
	DataReporting     = "Administrative - Data Collection & Reporting"
	Education         = "Education - Staff & Trainees"
	Research          = "Research & Quality Improvement"
	Other             = "Other - specify in comments"
	patientCarePrefix = "Patient Care"
)

var all = []string{
	ProspectiveAudit,
	Preauthorization,
	Consults,
	CultureFollowUp,
	DoseOptimization,
	Emails,
	Meetings,
	Guidelines,
	DataReporting,
	Education,
	Research,
	Other,
}

// legacy short codes written by older clients.
var legacy = map[string]string{
	"paf":       ProspectiveAudit,
	"preauth":   Preauthorization,
	"consult":   Consults,
	"culture":   CultureFollowUp,
	"ivpo":      DoseOptimization,
	"email":     Emails,
	"meeting":   Meetings,
	"guideline": Guidelines,
	"data":      DataReporting,
	"education": Education,
	"research":  Research,
	"other":     Other,
}

var byKey = func() map[string]string {
	m := make(map[string]string, len(all))
	for _, t := range all {
		m[key(t)] = t
	}
	return m
}()

// All returns the enumeration in display order.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// LegacyCodes returns the short codes Parse accepts and their canonical tasks.
func LegacyCodes() map[string]string {
	out := make(map[string]string, len(legacy))
	for k, v := range legacy {
		out[k] = v
	}
	return out
}

func Valid(t string) bool {
	for _, v := range all {
		if v == t {
			return true
		}
	}
	return false
}

// Parse maps canonical values, dash/case variants and legacy codes onto the
// canonical value.
func Parse(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if Valid(s) {
		return s, true
	}
	if t, ok := legacy[strings.ToLower(s)]; ok {
		return t, true
	}
	if t, ok := byKey[key(s)]; ok {
		return t, true
	}
	return "", false
}

func IsPatientCare(t string) bool { return strings.HasPrefix(t, patientCarePrefix) }

func IsOther(t string) bool { return t == Other }

// key folds case, dash style and spacing.
func key(s string) string {
	r := strings.NewReplacer("\u2013", "-", "\u2014", "-")
	s = strings.ToLower(r.Replace(s))
	return strings.Join(strings.Fields(s), " ")
}
