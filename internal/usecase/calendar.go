package usecase

import "time"

// Clock tells the current time in the platforms' timezone.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// Calendar decides which periodic gifts are due on a given day.
type Calendar struct {
	WeeklyDay time.Weekday
}

// IsEndOfWeek reports whether t falls on the weekly gift day.
func (c Calendar) IsEndOfWeek(t time.Time) bool {
	return t.Weekday() == c.WeeklyDay
}

// IsLastDayOfMonth reports whether t is the last calendar day of its month.
func (c Calendar) IsLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}
