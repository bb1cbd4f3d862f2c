package domain

import "time"

// CarryOverResolution marks a date whose carry-over prompt has been handled,
// either by moving selected tasks or by explicit dismissal. One row per date;
// the row is terminal for that date.
type CarryOverResolution struct {
	Date       string // YYYY-MM-DD, primary key
	Outcome    ResolutionOutcome
	MovedCount int
	ResolvedAt time.Time
}
