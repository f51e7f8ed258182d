package models

import (
	"strings"
	"testing"
)

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()
	if !strings.HasPrefix(id, "ORD-") {
		t.Fatalf("expected ORD- prefix, got %q", id)
	}
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 dash-separated parts, got %q", id)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("expected 9 char suffix, got %q", parts[2])
	}
	if GenerateOrderID() == id {
		t.Fatalf("consecutive order IDs should differ")
	}
}
