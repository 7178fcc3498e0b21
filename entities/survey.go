package entities

import "time"

// UserProfile holds the professional profile a user fills in once.
type UserProfile struct {
	UserID        string    `gorm:"primaryKey" json:"user_id"`
	DisplayName   string    `json:"display_name"`
	Profession    string    `json:"profession"` // pharmacist|physician|nurse|other
	Specialty     string    `json:"specialty"`
	PrimaryRole   string    `json:"primary_role"`
	YearsInASP    *int      `json:"years_in_asp"`
	ASPFTEPercent *float64  `json:"asp_fte_percent"`
	FacilityType  string    `json:"facility_type"` // academic|community|critical_access|va|other
	FacilityBeds  *int      `json:"facility_beds"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	CoverageExact   = "exact"
	CoveragePercent = "percent"
)

// BedCoverage is either an exact bed count or a percentage of facility beds,
// never both.
type BedCoverage struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

func ExactBeds(n int) *BedCoverage { return &BedCoverage{Mode: CoverageExact, Value: float64(n)} }

func PercentBeds(p float64) *BedCoverage { return &BedCoverage{Mode: CoveragePercent, Value: p} }

// AdditionalSurvey captures facility-level operational answers.
type AdditionalSurvey struct {
	UserID              string       `gorm:"primaryKey" json:"user_id"`
	BedsCovered         *BedCoverage `gorm:"serializer:json" json:"beds_covered"`
	PharmacistFTE       *float64     `json:"pharmacist_fte"`
	PhysicianFTE        *float64     `json:"physician_fte"`
	HasIDConsultService *bool        `json:"has_id_consult_service"`
	HasDecisionSupport  *bool        `json:"has_decision_support"`
	ProtectedHours      *int         `json:"protected_hours_weekly"`
	Notes               string       `json:"notes,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// BurnoutResponse is a user's latest burnout inventory submission.
// Answers are keyed by question index and already direction-corrected.
type BurnoutResponse struct {
	UserID             string      `gorm:"primaryKey" json:"user_id"`
	Answers            map[int]int `gorm:"serializer:json" json:"answers"`
	Exhaustion         float64     `json:"exhaustion"`
	Disengagement      float64     `json:"disengagement"`
	Overall            float64     `json:"overall"`
	ExhaustionLevel    string      `json:"exhaustion_level"`
	DisengagementLevel string      `json:"disengagement_level"`
	OverallLevel       string      `gorm:"index" json:"overall_level"`
	SubmittedAt        time.Time   `json:"submitted_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
