package models

import "testing"

func sampleOrders() []Order {
	return []Order{
		{
			Summary: OrderSummary{Total: 100},
			CartItems: []CartItem{
				{Name: "Steak", Type: "food", Quantity: 2, TotalPrice: 60},
				{Name: "House Wine", Type: "wine", Quantity: 1, TotalPrice: 40},
			},
		},
		{
			Summary: OrderSummary{Total: 50},
			CartItems: []CartItem{
				{Name: "Steak", Type: "food", Quantity: 1, TotalPrice: 30},
				{Name: "Lemonade", Type: "", Quantity: 2, TotalPrice: 20},
			},
		},
	}
}

func TestComputeSales(t *testing.T) {
	s := ComputeSales(sampleOrders())
	if s.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", s.TotalOrders)
	}
	if s.TotalRevenue != 150 {
		t.Fatalf("expected revenue 150, got %v", s.TotalRevenue)
	}
	if s.TotalItemsSold != 6 {
		t.Fatalf("expected 6 items sold, got %d", s.TotalItemsSold)
	}
	if s.AverageOrderValue != 75 {
		t.Fatalf("expected average 75, got %v", s.AverageOrderValue)
	}

	empty := ComputeSales(nil)
	if empty.AverageOrderValue != 0 {
		t.Fatalf("expected zero average for no orders, got %v", empty.AverageOrderValue)
	}
}

func TestComputeRevenueByCategory(t *testing.T) {
	r := ComputeRevenueByCategory(sampleOrders())
	if r.Food != 110 {
		t.Fatalf("expected food 110 (untyped items count as food), got %v", r.Food)
	}
	if r.Wine != 40 {
		t.Fatalf("expected wine 40, got %v", r.Wine)
	}
	if r.Alcohol != 0 || r.Cocktail != 0 || r.SoftDrink != 0 || r.Dessert != 0 {
		t.Fatalf("unexpected revenue in empty categories: %+v", r)
	}
}

func TestComputeStockSummary(t *testing.T) {
	movements := []StockMovement{
		{Type: "in", Quantity: 50},
		{Type: "in", Quantity: 10},
		{Type: "out", Quantity: 20, Reason: "Order fulfillment"},
		{Type: "out", Quantity: 5, Reason: "Spoiled, waste"},
		{Type: "adjustment", Quantity: 3, Reason: "Wasted during prep"},
	}
	s := ComputeStockSummary(movements)
	if s.TotalStockIn != 60 {
		t.Fatalf("expected stock in 60, got %v", s.TotalStockIn)
	}
	if s.TotalStockOut != 25 {
		t.Fatalf("expected stock out 25, got %v", s.TotalStockOut)
	}
	if s.StockAdjustments != 3 {
		t.Fatalf("expected adjustments 3, got %v", s.StockAdjustments)
	}
	if s.Waste != 8 {
		t.Fatalf("expected waste 8 across types, got %v", s.Waste)
	}
}

func TestComputeFinancials(t *testing.T) {
	records := []FinancialRecord{
		{
			RecordType: "sale",
			Items: []FinancialItem{
				{CostPrice: 10, Quantity: 3},
				{CostPrice: 5, Quantity: 2},
			},
		},
		{RecordType: "purchase", TotalAmount: 25},
		{RecordType: "expense", TotalAmount: 15},
	}
	f := ComputeFinancials(200, records)
	if f.TotalCost != 40 {
		t.Fatalf("expected cost 40, got %v", f.TotalCost)
	}
	if f.GrossProfit != 160 {
		t.Fatalf("expected gross profit 160, got %v", f.GrossProfit)
	}
	if f.Expenses != 40 {
		t.Fatalf("expected expenses 40, got %v", f.Expenses)
	}
	if f.NetProfit != 120 {
		t.Fatalf("expected net profit 120, got %v", f.NetProfit)
	}
}

func TestComputeTopSellingItems(t *testing.T) {
	items := ComputeTopSellingItems(sampleOrders(), 10)
	if len(items) != 3 {
		t.Fatalf("expected 3 distinct items, got %d", len(items))
	}
	if items[0].Name != "Steak" || items[0].Quantity != 3 || items[0].Revenue != 90 {
		t.Fatalf("unexpected top item: %+v", items[0])
	}
	if items[1].Name != "Lemonade" || items[2].Name != "House Wine" {
		t.Fatalf("unexpected ordering: %q then %q", items[1].Name, items[2].Name)
	}

	capped := ComputeTopSellingItems(sampleOrders(), 1)
	if len(capped) != 1 || capped[0].Name != "Steak" {
		t.Fatalf("expected cap to keep the top item, got %+v", capped)
	}
}
