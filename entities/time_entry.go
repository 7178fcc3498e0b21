package entities

import (
	"time"

	"gorm.io/gorm"
)

// TimeEntry is one logged unit of stewardship work.
type TimeEntry struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	UserID       string         `gorm:"index;not null" json:"user_id"`
	Task         string         `gorm:"index;not null" json:"task"`
	OtherTask    string         `json:"other_task,omitempty"`
	Minutes      int            `json:"minutes"`
	PatientCount *int           `json:"patient_count"`
	IsTypicalDay bool           `json:"is_typical_day"`
	OccurredOn   Occurrence     `gorm:"index" json:"occurred_on"`
	Comment      string         `json:"comment,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the entry has been soft-deleted.
func (e *TimeEntry) IsDeleted() bool { return e.DeletedAt.Valid }
