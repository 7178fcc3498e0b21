// Package survey validates the per-user profile and questionnaires.
package survey

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"sparc/entities"
)

var (
	ErrNotFound   = errors.New("survey not found")
	ErrValidation = errors.New("validation failed")
)

var (
	Professions   = []string{"pharmacist", "physician", "nurse", "other"}
	FacilityTypes = []string{"academic", "community", "critical_access", "va", "other"}
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type checker map[string]string

func (c checker) add(field, msg string) {
	if _, ok := c[field]; !ok {
		c[field] = msg
	}
}

func (c checker) err() error {
	if len(c) == 0 {
		return nil
	}
	return &ValidationError{Fields: c}
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// ValidateProfile trims text fields and checks numeric ranges.
func ValidateProfile(p *entities.UserProfile) error {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Specialty = strings.TrimSpace(p.Specialty)
	p.PrimaryRole = strings.TrimSpace(p.PrimaryRole)
	p.Profession = strings.ToLower(strings.TrimSpace(p.Profession))
	p.FacilityType = strings.ToLower(strings.TrimSpace(p.FacilityType))

	c := checker{}
	if p.Profession != "" && !oneOf(p.Profession, Professions) {
		c.add("profession", "unknown profession")
	}
	if p.FacilityType != "" && !oneOf(p.FacilityType, FacilityTypes) {
		c.add("facility_type", "unknown facility type")
	}
	if p.YearsInASP != nil && *p.YearsInASP < 0 {
		c.add("years_in_asp", "years cannot be negative")
	}
	if p.ASPFTEPercent != nil && (*p.ASPFTEPercent < 0 || *p.ASPFTEPercent > 100) {
		c.add("asp_fte_percent", "FTE percent must be between 0 and 100")
	}
	if p.FacilityBeds != nil && *p.FacilityBeds < 0 {
		c.add("facility_beds", "bed count cannot be negative")
	}
	return c.err()
}

// ValidateCoverage checks the active mode of a bed coverage answer.
func ValidateCoverage(b *entities.BedCoverage) string {
	if b == nil {
		return ""
	}
	switch b.Mode {
	case entities.CoverageExact:
		if b.Value < 0 {
			return "bed count cannot be negative"
		}
		if b.Value != float64(int64(b.Value)) {
			return "bed count must be a whole number"
		}
	case entities.CoveragePercent:
		if b.Value < 0 || b.Value > 100 {
			return "percentage must be between 0 and 100"
		}
	default:
		return "mode must be exact or percent"
	}
	return ""
}

func ValidateAdditional(a *entities.AdditionalSurvey) error {
	a.Notes = strings.TrimSpace(a.Notes)

	c := checker{}
	if msg := ValidateCoverage(a.BedsCovered); msg != "" {
		c.add("beds_covered", msg)
	}
	if a.PharmacistFTE != nil && *a.PharmacistFTE < 0 {
		c.add("pharmacist_fte", "FTE cannot be negative")
	}
	if a.PhysicianFTE != nil && *a.PhysicianFTE < 0 {
		c.add("physician_fte", "FTE cannot be negative")
	}
	if a.ProtectedHours != nil && (*a.ProtectedHours < 0 || *a.ProtectedHours > 168) {
		c.add("protected_hours_weekly", "hours must be between 0 and 168")
	}
	return c.err()
}
