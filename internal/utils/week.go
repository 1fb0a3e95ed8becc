package utils

import (
	"fmt"
	"regexp"
	"time"
)

var weekIDPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// WeekID returns the ISO 8601 week identifier for t, e.g. "2025-W07".
// The ISO year can differ from the calendar year around January 1st.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// CurrentWeekID returns the week identifier for the current wall-clock
// time. All "current week" operations (plans, claims, votes) bucket on
// this value.
func CurrentWeekID() string {
	return WeekID(time.Now())
}

// ValidWeekID reports whether s looks like an ISO week identifier.
func ValidWeekID(s string) bool {
	return weekIDPattern.MatchString(s)
}
