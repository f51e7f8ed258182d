package utils

import "time"

// DayRange returns the inclusive bounds of the calendar day containing t.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
	return start, end
}

// WeekRange returns the Sunday-to-Saturday week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	start = start.AddDate(0, 0, -int(t.Weekday()))
	end := start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, t.Location())
	return start, end
}

// LastWeekRange returns the week before the one containing t, for the
// Monday report that covers the previous seven days.
func LastWeekRange(t time.Time) (time.Time, time.Time) {
	start, end := WeekRange(t)
	return start.AddDate(0, 0, -7), end.AddDate(0, 0, -7)
}

// MonthRange returns the inclusive bounds of the calendar month containing t.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// YearRange returns the inclusive bounds of a calendar year.
func YearRange(year int, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999000000, loc)
	return start, end
}
