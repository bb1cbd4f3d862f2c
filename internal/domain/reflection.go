package domain

import "time"

// Reflection is free-form end-of-day writing attached to a report.
type Reflection struct {
	ID       string
	ReportID string
	Content  string
	Mood     int // 1-5

	CreatedAt time.Time
	UpdatedAt time.Time
}
