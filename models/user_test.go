package models

import "testing"

func TestAttendanceRate(t *testing.T) {
	cases := []struct {
		logins int
		want   int
	}{
		{0, 0},
		{1, 20},
		{3, 60},
		{5, 100},
		{9, 100},
	}
	for _, c := range cases {
		if got := AttendanceRate(c.logins); got != c.want {
			t.Fatalf("AttendanceRate(%d) = %d, want %d", c.logins, got, c.want)
		}
	}
}
