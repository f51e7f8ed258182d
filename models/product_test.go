package models

import (
	"strings"
	"testing"
)

func TestComputeProfitMargin(t *testing.T) {
	cases := []struct {
		cost, selling, want float64
	}{
		{10, 15, 50},
		{10, 10, 0},
		{20, 10, -50},
		{0, 15, 0},
		{10, 0, 0},
		{-5, 15, 0},
	}
	for _, c := range cases {
		if got := ComputeProfitMargin(c.cost, c.selling); got != c.want {
			t.Fatalf("ComputeProfitMargin(%v, %v) = %v, want %v", c.cost, c.selling, got, c.want)
		}
	}
}

func TestGenerateSKU(t *testing.T) {
	cases := []struct {
		category string
		prefix   string
	}{
		{"wine", "WIN-"},
		{"food", "FOOD-"},
		{"cocktail", "CKTL-"},
		{"something_else", "PROD-"},
		{"", "PROD-"},
	}
	for _, c := range cases {
		sku := GenerateSKU(c.category)
		if !strings.HasPrefix(sku, c.prefix) {
			t.Fatalf("GenerateSKU(%q) = %q, want prefix %q", c.category, sku, c.prefix)
		}
		parts := strings.Split(sku, "-")
		if len(parts) != 3 {
			t.Fatalf("GenerateSKU(%q) = %q, want 3 dash-separated parts", c.category, sku)
		}
		if len(parts[2]) != 3 {
			t.Fatalf("GenerateSKU(%q) = %q, want 3 char suffix", c.category, sku)
		}
	}
	if GenerateSKU("wine") == GenerateSKU("wine") {
		t.Fatalf("consecutive SKUs should differ")
	}
}
