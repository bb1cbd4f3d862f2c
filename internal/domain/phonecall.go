package domain

import "time"

// PhoneCall records a call handled during a report's workday.
type PhoneCall struct {
	ID         string
	ReportID   string
	Caller     string
	Subject    string
	Memo       string
	ReceivedAt time.Time

	CreatedAt time.Time
}
