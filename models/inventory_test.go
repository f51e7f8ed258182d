package models

import (
	"testing"
	"time"
)

func TestDeriveStockStatus(t *testing.T) {
	cases := []struct {
		current, min, max float64
		want              string
	}{
		{0, 0, 100, "out_of_stock"},
		{0, 10, 100, "out_of_stock"},
		{5, 10, 100, "low_stock"},
		{10, 10, 100, "low_stock"},
		{50, 10, 100, "in_stock"},
		{90, 10, 100, "over_stock"},
		{95, 10, 100, "over_stock"},
		{89, 10, 100, "in_stock"},
	}
	for _, c := range cases {
		if got := DeriveStockStatus(c.current, c.min, c.max); got != c.want {
			t.Fatalf("DeriveStockStatus(%v, %v, %v) = %q, want %q", c.current, c.min, c.max, got, c.want)
		}
	}
}

func TestInventoryRecalculate(t *testing.T) {
	inv := Inventory{
		CurrentStock:  40,
		ReservedStock: 5,
		MinimumStock:  10,
		MaximumStock:  100,
	}
	before := time.Now()
	inv.Recalculate(2.5)

	if inv.AvailableStock != 35 {
		t.Fatalf("expected available stock 35, got %v", inv.AvailableStock)
	}
	if inv.TotalValue != 100 {
		t.Fatalf("expected total value 100, got %v", inv.TotalValue)
	}
	if inv.AverageCost != 2.5 {
		t.Fatalf("expected average cost 2.5, got %v", inv.AverageCost)
	}
	if inv.StockStatus != "in_stock" {
		t.Fatalf("expected in_stock, got %q", inv.StockStatus)
	}
	if inv.UpdatedAt.Before(before) {
		t.Fatalf("expected UpdatedAt to be refreshed")
	}

	inv.CurrentStock = 0
	inv.Recalculate(2.5)
	if inv.StockStatus != "out_of_stock" {
		t.Fatalf("expected out_of_stock, got %q", inv.StockStatus)
	}
	if inv.TotalValue != 0 {
		t.Fatalf("expected total value 0, got %v", inv.TotalValue)
	}
}
