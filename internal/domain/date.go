package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates throughout the app.
const DateLayout = "2006-01-02"

// ErrInvalidDate indicates a date string that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate validates a YYYY-MM-DD string and returns its time value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidDate)
	}
	return t, nil
}

// PrevDay returns the date string for the calendar day before d.
func PrevDay(d string) (string, error) {
	t, err := ParseDate(d)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}

// NextDay returns the date string for the calendar day after d.
func NextDay(d string) (string, error) {
	t, err := ParseDate(d)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// DateOf formats a time value as a date string in local time.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
