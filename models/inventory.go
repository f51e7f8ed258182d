package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StockLocation struct {
	Warehouse string `bson:"warehouse" json:"warehouse"`
	Shelf     string `bson:"shelf,omitempty" json:"shelf,omitempty"`
	Section   string `bson:"section,omitempty" json:"section,omitempty"`
}

type Inventory struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Product        primitive.ObjectID `bson:"product" json:"product"`
	CurrentStock   float64            `bson:"current_stock" json:"currentStock"`
	ReservedStock  float64            `bson:"reserved_stock" json:"reservedStock"`
	AvailableStock float64            `bson:"available_stock" json:"availableStock"`
	MinimumStock   float64            `bson:"minimum_stock" json:"minimumStock"`
	MaximumStock   float64            `bson:"maximum_stock" json:"maximumStock"`
	Location       StockLocation      `bson:"location" json:"location"`
	TotalValue     float64            `bson:"total_value" json:"totalValue"`
	AverageCost    float64            `bson:"average_cost" json:"averageCost"`
	StockStatus    string             `bson:"stock_status" json:"stockStatus"` // "in_stock", "low_stock", "out_of_stock", "over_stock"
	LastRestocked  *time.Time         `bson:"last_restocked,omitempty" json:"lastRestocked,omitempty"`
	LastSold       *time.Time         `bson:"last_sold,omitempty" json:"lastSold,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// DeriveStockStatus classifies stock against the configured thresholds.
// The ordering matters: an empty shelf is out_of_stock even when the
// minimum is zero.
func DeriveStockStatus(currentStock, minimumStock, maximumStock float64) string {
	switch {
	case currentStock == 0:
		return "out_of_stock"
	case currentStock <= minimumStock:
		return "low_stock"
	case currentStock >= maximumStock*0.9:
		return "over_stock"
	default:
		return "in_stock"
	}
}

// Recalculate refreshes the derived fields from the current quantities and
// the product's cost price. Called on every write path that touches stock.
func (inv *Inventory) Recalculate(costPrice float64) {
	inv.AvailableStock = inv.CurrentStock - inv.ReservedStock
	inv.StockStatus = DeriveStockStatus(inv.CurrentStock, inv.MinimumStock, inv.MaximumStock)
	inv.TotalValue = inv.CurrentStock * costPrice
	inv.AverageCost = costPrice
	inv.UpdatedAt = time.Now()
}

type StockMovement struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Product       primitive.ObjectID  `bson:"product" json:"product"`
	Type          string              `bson:"type" json:"type"` // "in", "out", "adjustment"
	Quantity      float64             `bson:"quantity" json:"quantity"`
	Reference     string              `bson:"reference" json:"reference"`
	Source        string              `bson:"source" json:"source"`
	Destination   string              `bson:"destination" json:"destination"`
	Order         *primitive.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	UnitCost      float64             `bson:"unit_cost" json:"unitCost"`
	TotalCost     float64             `bson:"total_cost" json:"totalCost"`
	PreviousStock float64             `bson:"previous_stock" json:"previousStock"`
	NewStock      float64             `bson:"new_stock" json:"newStock"`
	Reason        string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy     *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
}

// StockInResult describes one successful line of a stock mutation.
type StockInResult struct {
	Product       string  `json:"product"`
	Quantity      float64 `json:"quantity"`
	PreviousStock float64 `json:"previousStock"`
	NewStock      float64 `json:"newStock"`
}

// BulkFailure pairs a rejected input with the reason it was skipped.
type BulkFailure struct {
	Input  interface{} `json:"input"`
	Reason string      `json:"reason"`
}

// BulkStockResult is the typed outcome of a partial-failure bulk operation.
// Callers must inspect both sides; a non-empty Failed list does not mean the
// whole call failed.
type BulkStockResult struct {
	Succeeded []StockInResult `json:"succeeded"`
	Failed    []BulkFailure   `json:"failed"`
}

type StockInItem struct {
	ProductID string  `json:"productId"`
	Quantity  float64 `json:"quantity"`
	CostPrice float64 `json:"costPrice"`
}
