package utils

import (
	"testing"
	"time"
)

func TestDayRange(t *testing.T) {
	ref := time.Date(2024, time.May, 15, 13, 45, 12, 0, time.UTC)
	start, end := DayRange(ref)

	if !start.Equal(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.May, 15, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestWeekRange(t *testing.T) {
	// Wednesday; the containing week runs Sunday the 12th to Saturday the 18th.
	ref := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)
	start, end := WeekRange(ref)

	if !start.Equal(time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.May, 18, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}

	// A Sunday is the start of its own week.
	sunday := time.Date(2024, time.May, 12, 8, 0, 0, 0, time.UTC)
	start, _ = WeekRange(sunday)
	if !start.Equal(time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start for sunday: %v", start)
	}
}

func TestLastWeekRange(t *testing.T) {
	ref := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)
	start, end := LastWeekRange(ref)

	if !start.Equal(time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.May, 11, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}
}

func TestMonthRange(t *testing.T) {
	ref := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	start, end := MonthRange(ref)

	if !start.Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("expected leap year end of month, got %v", end)
	}
}

func TestYearRange(t *testing.T) {
	start, end := YearRange(2024, time.UTC)

	if !start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2024, time.December, 31, 23, 59, 59, 999000000, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}
}
