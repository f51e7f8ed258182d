package models

import "testing"

func TestIsValidTimeSlot(t *testing.T) {
	for _, slot := range TimeSlots {
		if !IsValidTimeSlot(slot) {
			t.Fatalf("expected %q to be valid", slot)
		}
	}
	for _, slot := range []string{"9:00 AM", "10:00", "", "8:30 PM"} {
		if IsValidTimeSlot(slot) {
			t.Fatalf("expected %q to be invalid", slot)
		}
	}
}

func TestClassifySlots(t *testing.T) {
	counts := map[string]int{
		"10:00 AM": 0,
		"12:00 PM": 3,
		"7:00 PM":  SlotCapacity,
		"bogus":    5,
	}
	details := ClassifySlots(counts)
	if len(details) != len(TimeSlots) {
		t.Fatalf("expected %d slots, got %d", len(TimeSlots), len(details))
	}
	byTime := make(map[string]SlotDetail)
	for _, d := range details {
		byTime[d.Time] = d
	}
	if d := byTime["10:00 AM"]; d.Status != "available" || d.Remaining != SlotCapacity {
		t.Fatalf("expected empty slot to be available with %d remaining, got %+v", SlotCapacity, d)
	}
	if d := byTime["12:00 PM"]; d.Status != "limited" || d.Booked != 3 || d.Remaining != SlotCapacity-3 {
		t.Fatalf("unexpected limited slot: %+v", d)
	}
	if d := byTime["7:00 PM"]; d.Status != "fully-booked" || d.Remaining != 0 {
		t.Fatalf("unexpected full slot: %+v", d)
	}
	if _, ok := byTime["bogus"]; ok {
		t.Fatalf("unknown slot label should be ignored")
	}
}

func TestServicePrice(t *testing.T) {
	cases := []struct {
		service string
		want    float64
	}{
		{"premium", 200},
		{"standard", 100},
		{"basic", 50},
		{"unknown", 100},
		{"", 100},
	}
	for _, c := range cases {
		if got := ServicePrice(c.service); got != c.want {
			t.Fatalf("ServicePrice(%q) = %v, want %v", c.service, got, c.want)
		}
	}
}
