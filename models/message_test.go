package models

import (
	"testing"
	"time"
)

func TestDerivePriority(t *testing.T) {
	cases := []struct {
		msgType string
		body    string
		want    string
	}{
		{"contact", "please call me URGENT", "urgent"},
		{"booking", "need this ASAP", "urgent"},
		{"booking", "table for four", "high"},
		{"reservation", "anniversary dinner", "high"},
		{"contact", "just saying hello", "medium"},
		{"complaint", "food was cold", "medium"},
	}
	for _, c := range cases {
		if got := DerivePriority(c.msgType, c.body); got != c.want {
			t.Fatalf("DerivePriority(%q, %q) = %q, want %q", c.msgType, c.body, got, c.want)
		}
	}
}

func TestDeriveCategory(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{"I want to book a table", "booking"},
		{"question about my reservation", "booking"},
		{"great service last night", "service"},
		{"need help with something", "service"},
		{"is this product on the menu", "product"},
		{"question about my bill", "billing"},
		{"payment did not go through", "billing"},
		{"the website is broken", "technical"},
		{"hello there", "general"},
		// booking keywords win over later matches
		{"booking payment issue", "booking"},
	}
	for _, c := range cases {
		if got := DeriveCategory(c.body); got != c.want {
			t.Fatalf("DeriveCategory(%q) = %q, want %q", c.body, got, c.want)
		}
	}
}

func TestStatusAfterResponse(t *testing.T) {
	cases := []struct {
		current  string
		internal bool
		want     string
	}{
		{"new", false, "replied"},
		{"read", false, "replied"},
		{"new", true, "new"},
		{"read", true, "read"},
		{"closed", true, "closed"},
	}
	for _, c := range cases {
		if got := StatusAfterResponse(c.current, c.internal); got != c.want {
			t.Fatalf("StatusAfterResponse(%q, %v) = %q, want %q", c.current, c.internal, got, c.want)
		}
	}
}

func TestDeriveType(t *testing.T) {
	date := time.Now()

	if got := DeriveType("", nil, "", 0); got != "contact" {
		t.Fatalf("expected empty type to default to contact, got %q", got)
	}
	if got := DeriveType("contact", &date, "7:00 PM", 4); got != "booking" {
		t.Fatalf("expected contact with booking details to promote, got %q", got)
	}
	if got := DeriveType("contact", &date, "", 4); got != "contact" {
		t.Fatalf("expected missing time slot to stay contact, got %q", got)
	}
	if got := DeriveType("complaint", &date, "7:00 PM", 4); got != "complaint" {
		t.Fatalf("expected declared type to stick, got %q", got)
	}
}
