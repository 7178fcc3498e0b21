// Package admin defines the analytics contract behind the admin dashboard.
package admin

import (
	"errors"
	"time"

	"sparc/entities"
)

var ErrSelfDemote = errors.New("admins cannot remove their own admin role")

const (
	ActiveWindow = 30 * 24 * time.Hour
	WeeksShown   = 12
	TopUsers     = 10
)

type Totals struct {
	Entries     int64 `json:"entries"`
	Minutes     int64 `json:"minutes"`
	Users       int64 `json:"users"`
	ActiveUsers int64 `json:"active_users_30d"`
}

type TaskMinutes struct {
	Task    string `json:"task"`
	Entries int64  `json:"entries"`
	Minutes int64  `json:"minutes"`
}

type UserMinutes struct {
	UserID  string `json:"user_id"`
	Entries int64  `json:"entries"`
	Minutes int64  `json:"minutes"`
}

type WeekMinutes struct {
	Week    string `json:"week"`
	Start   string `json:"start"`
	Entries int64  `json:"entries"`
	Minutes int64  `json:"minutes"`
}

// OccurrenceMinutes is minutes grouped by stored occurrence value.
type OccurrenceMinutes struct {
	OccurredOn entities.Occurrence
	Entries    int64
	Minutes    int64
}

type LevelCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

type TypicalDay struct {
	Typical int64   `json:"typical"`
	Total   int64   `json:"total"`
	Ratio   float64 `json:"ratio"`
}

type Stats struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	Totals        Totals        `json:"totals"`
	ByTask        []TaskMinutes `json:"minutes_by_task"`
	ByUser        []UserMinutes `json:"minutes_by_user"`
	ByWeek        []WeekMinutes `json:"minutes_by_week"`
	BurnoutLevels []LevelCount  `json:"burnout_levels"`
	TypicalDay    TypicalDay    `json:"typical_day"`
}
