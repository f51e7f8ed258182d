package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FinancialItem struct {
	Product    *primitive.ObjectID `bson:"product,omitempty" json:"product,omitempty"`
	Name       string              `bson:"name" json:"name"`
	Quantity   float64             `bson:"quantity" json:"quantity"`
	UnitPrice  float64             `bson:"unit_price" json:"unitPrice"`
	TotalPrice float64             `bson:"total_price" json:"totalPrice"`
	CostPrice  float64             `bson:"cost_price" json:"costPrice"`
	Profit     float64             `bson:"profit" json:"profit"`
}

type Party struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Type    string `bson:"type,omitempty" json:"type,omitempty"` // "customer", "supplier", "internal"
	Contact string `bson:"contact,omitempty" json:"contact,omitempty"`
}

type FinancialRecord struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	RecordType      string              `bson:"record_type" json:"recordType"` // "sale", "purchase", "expense"
	Reference       string              `bson:"reference" json:"reference"`
	Order           *primitive.ObjectID `bson:"order,omitempty" json:"order,omitempty"`
	Amount          float64             `bson:"amount" json:"amount"`
	Tax             float64             `bson:"tax" json:"tax"`
	TotalAmount     float64             `bson:"total_amount" json:"totalAmount"`
	PaymentMethod   string              `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus   string              `bson:"payment_status" json:"paymentStatus"`
	Items           []FinancialItem     `bson:"items,omitempty" json:"items,omitempty"`
	Party           Party               `bson:"party,omitempty" json:"party,omitempty"`
	TransactionDate time.Time           `bson:"transaction_date" json:"transactionDate"`
	DueDate         *time.Time          `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Category        string              `bson:"category,omitempty" json:"category,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy       *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
}

// Finalize computes the derived totals before the record is written:
// totalAmount = amount + tax and per-line profit = (unit - cost) * qty.
func (r *FinancialRecord) Finalize() {
	r.TotalAmount = r.Amount + r.Tax
	for i := range r.Items {
		item := &r.Items[i]
		if item.UnitPrice != 0 && item.CostPrice != 0 && item.Quantity != 0 {
			item.Profit = (item.UnitPrice - item.CostPrice) * item.Quantity
		}
	}
}

// AttributeRevenueCategory keyword-matches an item name to a revenue
// category. First match in the fixed enumeration wins; unmatched names
// fall back to food.
func AttributeRevenueCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "wine"):
		return "wine"
	case strings.Contains(lower, "beer"), strings.Contains(lower, "whiskey"), strings.Contains(lower, "vodka"):
		return "alcohol"
	case strings.Contains(lower, "cocktail"):
		return "cocktail"
	case strings.Contains(lower, "drink"), strings.Contains(lower, "soda"):
		return "soft_drink"
	case strings.Contains(lower, "cake"), strings.Contains(lower, "dessert"):
		return "dessert"
	default:
		return "food"
	}
}
