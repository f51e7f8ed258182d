package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SupplierInfo struct {
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Contact string `bson:"contact,omitempty" json:"contact,omitempty"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Product struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string              `bson:"name" json:"name" binding:"required"`
	SKU            string              `bson:"sku" json:"sku"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Category       string              `bson:"category" json:"category"` // "food", "alcohol", "soft_drink", "wine", "cocktail", "dessert", "ingredient", "supply"
	SubCategory    string              `bson:"sub_category,omitempty" json:"subCategory,omitempty"`
	CostPrice      float64             `bson:"cost_price" json:"costPrice"`
	SellingPrice   float64             `bson:"selling_price" json:"sellingPrice"`
	ProfitMargin   float64             `bson:"profit_margin" json:"profitMargin"`
	Unit           string              `bson:"unit" json:"unit"`
	UnitSize       float64             `bson:"unit_size,omitempty" json:"unitSize,omitempty"`
	SizeUnit       string              `bson:"size_unit,omitempty" json:"sizeUnit,omitempty"`
	AlcoholContent float64             `bson:"alcohol_content,omitempty" json:"alcoholContent,omitempty"`
	Brand          string              `bson:"brand,omitempty" json:"brand,omitempty"`
	Vintage        int                 `bson:"vintage,omitempty" json:"vintage,omitempty"`
	Country        string              `bson:"country,omitempty" json:"country,omitempty"`
	ReorderPoint   float64             `bson:"reorder_point" json:"reorderPoint"`
	OptimalStock   float64             `bson:"optimal_stock" json:"optimalStock"`
	Image          string              `bson:"image,omitempty" json:"image,omitempty"`
	Barcode        string              `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Supplier       SupplierInfo        `bson:"supplier,omitempty" json:"supplier,omitempty"`
	IsActive       bool                `bson:"is_active" json:"isActive"`
	IsTaxable      bool                `bson:"is_taxable" json:"isTaxable"`
	CreatedBy      *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// ComputeProfitMargin returns the margin percentage relative to cost.
// Zero when either price is not positive.
func ComputeProfitMargin(costPrice, sellingPrice float64) float64 {
	if costPrice <= 0 || sellingPrice <= 0 {
		return 0
	}
	return (sellingPrice - costPrice) / costPrice * 100
}

var skuPrefixes = map[string]string{
	"alcohol":    "ALC",
	"wine":       "WIN",
	"cocktail":   "CKTL",
	"soft_drink": "SDRK",
	"food":       "FOOD",
	"dessert":    "DSRT",
	"ingredient": "INGR",
	"supply":     "SUPP",
}

// GenerateSKU builds a catalog code like FOOD-M2X41A-Q7Z for the category.
func GenerateSKU(category string) string {
	prefix, ok := skuPrefixes[category]
	if !ok {
		prefix = "PROD"
	}
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = chars[rand.Intn(len(chars))]
	}
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("%s-%s-%s", prefix, ts, suffix)
}
