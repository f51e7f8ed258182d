package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SalesSummary struct {
	TotalOrders       int     `bson:"total_orders" json:"totalOrders"`
	TotalRevenue      float64 `bson:"total_revenue" json:"totalRevenue"`
	TotalItemsSold    int     `bson:"total_items_sold" json:"totalItemsSold"`
	AverageOrderValue float64 `bson:"average_order_value" json:"averageOrderValue"`
}

type RevenueByCategory struct {
	Food      float64 `bson:"food" json:"food"`
	Alcohol   float64 `bson:"alcohol" json:"alcohol"`
	Wine      float64 `bson:"wine" json:"wine"`
	Cocktail  float64 `bson:"cocktail" json:"cocktail"`
	SoftDrink float64 `bson:"soft_drink" json:"soft_drink"`
	Dessert   float64 `bson:"dessert" json:"dessert"`
}

type StockSummary struct {
	TotalStockIn     float64 `bson:"total_stock_in" json:"totalStockIn"`
	TotalStockOut    float64 `bson:"total_stock_out" json:"totalStockOut"`
	StockAdjustments float64 `bson:"stock_adjustments" json:"stockAdjustments"`
	Waste            float64 `bson:"waste" json:"waste"`
}

type FinancialSummary struct {
	TotalCost    float64 `bson:"total_cost" json:"totalCost"`
	TotalRevenue float64 `bson:"total_revenue" json:"totalRevenue"`
	GrossProfit  float64 `bson:"gross_profit" json:"grossProfit"`
	NetProfit    float64 `bson:"net_profit" json:"netProfit"`
	Expenses     float64 `bson:"expenses" json:"expenses"`
}

type TopSellingItem struct {
	Product  *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Name     string              `bson:"name" json:"name"`
	Quantity int                 `bson:"quantity" json:"quantity"`
	Revenue  float64             `bson:"revenue" json:"revenue"`
}

type LowStockItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Name         string             `bson:"name" json:"name"`
	CurrentStock float64            `bson:"current_stock" json:"currentStock"`
	ReorderPoint float64            `bson:"reorder_point" json:"reorderPoint"`
}

type DailySummary struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date              time.Time          `bson:"date" json:"date"`
	Sales             SalesSummary       `bson:"sales" json:"sales"`
	RevenueByCategory RevenueByCategory  `bson:"revenue_by_category" json:"revenueByCategory"`
	Stock             StockSummary       `bson:"stock" json:"stock"`
	Financials        FinancialSummary   `bson:"financials" json:"financials"`
	TopSellingItems   []TopSellingItem   `bson:"top_selling_items" json:"topSellingItems"`
	LowStockItems     []LowStockItem     `bson:"low_stock_items" json:"lowStockItems"`
	GeneratedAt       time.Time          `bson:"generated_at" json:"generatedAt"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ComputeSales folds completed orders of one day into the sales block.
func ComputeSales(orders []Order) SalesSummary {
	var s SalesSummary
	s.TotalOrders = len(orders)
	for _, o := range orders {
		s.TotalRevenue += o.Summary.Total
		for _, item := range o.CartItems {
			s.TotalItemsSold += item.Quantity
		}
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	return s
}

// ComputeRevenueByCategory buckets cart item revenue by the item's type.
// Items with an unknown type count as food.
func ComputeRevenueByCategory(orders []Order) RevenueByCategory {
	var r RevenueByCategory
	for _, o := range orders {
		for _, item := range o.CartItems {
			category := item.Type
			if category == "" {
				category = "food"
			}
			switch category {
			case "food":
				r.Food += item.TotalPrice
			case "alcohol":
				r.Alcohol += item.TotalPrice
			case "wine":
				r.Wine += item.TotalPrice
			case "cocktail":
				r.Cocktail += item.TotalPrice
			case "soft_drink":
				r.SoftDrink += item.TotalPrice
			case "dessert":
				r.Dessert += item.TotalPrice
			}
		}
	}
	return r
}

// ComputeStockSummary totals movement quantities per type. Waste counts
// any movement whose reason mentions waste, regardless of type.
func ComputeStockSummary(movements []StockMovement) StockSummary {
	var s StockSummary
	for _, m := range movements {
		switch m.Type {
		case "in":
			s.TotalStockIn += m.Quantity
		case "out":
			s.TotalStockOut += m.Quantity
		case "adjustment":
			s.StockAdjustments += m.Quantity
		}
		if strings.Contains(strings.ToLower(m.Reason), "waste") {
			s.Waste += m.Quantity
		}
	}
	return s
}

// ComputeFinancials derives the profit block. Cost comes from the item
// lines of sale records, expenses from purchase and expense records.
func ComputeFinancials(totalRevenue float64, records []FinancialRecord) FinancialSummary {
	var f FinancialSummary
	f.TotalRevenue = totalRevenue
	for _, rec := range records {
		switch rec.RecordType {
		case "sale":
			for _, item := range rec.Items {
				f.TotalCost += item.CostPrice * item.Quantity
			}
		case "purchase", "expense":
			f.Expenses += rec.TotalAmount
		}
	}
	f.GrossProfit = f.TotalRevenue - f.TotalCost
	f.NetProfit = f.GrossProfit - f.Expenses
	return f
}

// ComputeTopSellingItems aggregates cart items by name and returns the
// top sellers by quantity, capped at limit.
func ComputeTopSellingItems(orders []Order, limit int) []TopSellingItem {
	byName := make(map[string]*TopSellingItem)
	for _, o := range orders {
		for _, item := range o.CartItems {
			entry, ok := byName[item.Name]
			if !ok {
				entry = &TopSellingItem{Name: item.Name}
				byName[item.Name] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.TotalPrice
		}
	}
	items := make([]TopSellingItem, 0, len(byName))
	for _, entry := range byName {
		items = append(items, *entry)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity > items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
