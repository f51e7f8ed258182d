package models

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"guest@example.com",
		"first.last@example.co",
		"name-1@sub.example.org",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"guest@",
		"guest@example",
		"guest example@example.com",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}
