package domain

import "time"

// DailyReport is one user's record for a single calendar date.
// At most one report exists per date.
type DailyReport struct {
	ID        string
	Date      string // YYYY-MM-DD
	Condition int    // 1-5 self-assessed condition score
	WorkStart string // HH:MM, empty when not recorded
	WorkEnd   string // HH:MM, empty when not recorded
	Location  string

	// Tasks is populated when the report is loaded with its task list.
	// Repository Create/Update ignore it.
	Tasks []*Task

	CreatedAt time.Time
	UpdatedAt time.Time
}
