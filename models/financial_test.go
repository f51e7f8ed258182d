package models

import "testing"

func TestFinancialRecordFinalize(t *testing.T) {
	r := FinancialRecord{
		Amount: 100,
		Tax:    12,
		Items: []FinancialItem{
			{UnitPrice: 20, CostPrice: 8, Quantity: 3},
			{UnitPrice: 10, CostPrice: 0, Quantity: 2},
		},
	}
	r.Finalize()

	if r.TotalAmount != 112 {
		t.Fatalf("expected total 112, got %v", r.TotalAmount)
	}
	if r.Items[0].Profit != 36 {
		t.Fatalf("expected profit 36, got %v", r.Items[0].Profit)
	}
	if r.Items[1].Profit != 0 {
		t.Fatalf("expected zero profit when cost is unknown, got %v", r.Items[1].Profit)
	}
}

func TestAttributeRevenueCategory(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"House Red Wine", "wine"},
		{"Craft Beer", "alcohol"},
		{"Whiskey Sour Mix", "alcohol"},
		{"Signature Cocktail", "cocktail"},
		{"Soft Drink", "soft_drink"},
		{"Orange Soda", "soft_drink"},
		{"Chocolate Cake", "dessert"},
		{"Dessert Platter", "dessert"},
		{"Grilled Salmon", "food"},
		{"", "food"},
		{"Wine Cake", "wine"},
	}
	for _, c := range cases {
		if got := AttributeRevenueCategory(c.name); got != c.want {
			t.Fatalf("AttributeRevenueCategory(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
