package utils

import (
	"context"
	"log"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpdateDailySummary recomputes the summary document for the day
// containing date from scratch: completed orders, stock movements,
// financial records and current low stock alerts. The summary is
// upserted keyed by the day start.
func UpdateDailySummary(ctx context.Context, date time.Time) (*models.DailySummary, error) {
	startOfDay, endOfDay := DayRange(date)
	dayFilter := bson.M{"$gte": startOfDay, "$lte": endOfDay}

	orderCursor, err := config.OrderCollection.Find(ctx, bson.M{
		"order_details.timestamp": dayFilter,
		"order_details.status":    "completed",
	})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := orderCursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	movementCursor, err := config.StockMovementCollection.Find(ctx, bson.M{"created_at": dayFilter})
	if err != nil {
		return nil, err
	}
	var movements []models.StockMovement
	if err := movementCursor.All(ctx, &movements); err != nil {
		return nil, err
	}

	financialCursor, err := config.FinancialRecordCollection.Find(ctx, bson.M{"transaction_date": dayFilter})
	if err != nil {
		return nil, err
	}
	var records []models.FinancialRecord
	if err := financialCursor.All(ctx, &records); err != nil {
		return nil, err
	}

	sales := models.ComputeSales(orders)

	summary := models.DailySummary{
		Date:              startOfDay,
		Sales:             sales,
		RevenueByCategory: models.ComputeRevenueByCategory(orders),
		Stock:             models.ComputeStockSummary(movements),
		Financials:        models.ComputeFinancials(sales.TotalRevenue, records),
		TopSellingItems:   models.ComputeTopSellingItems(orders, 10),
		LowStockItems:     lowStockAlerts(ctx),
		GeneratedAt:       time.Now(),
		UpdatedAt:         time.Now(),
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$set": bson.M{
			"sales":               summary.Sales,
			"revenue_by_category": summary.RevenueByCategory,
			"stock":               summary.Stock,
			"financials":          summary.Financials,
			"top_selling_items":   summary.TopSellingItems,
			"low_stock_items":     summary.LowStockItems,
			"updated_at":          summary.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"date":         startOfDay,
			"generated_at": summary.GeneratedAt,
		},
	}

	var saved models.DailySummary
	err = config.DailySummaryCollection.FindOneAndUpdate(ctx, bson.M{"date": startOfDay}, update, opts).Decode(&saved)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// RefreshTodaysSummary is the fire-and-forget variant used after stock
// and order mutations. Failures are logged, not propagated.
func RefreshTodaysSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := UpdateDailySummary(ctx, time.Now()); err != nil {
		log.Printf("Error updating daily summary: %v", err)
	}
}

func lowStockAlerts(ctx context.Context) []models.LowStockItem {
	cursor, err := config.InventoryCollection.Find(ctx, bson.M{"stock_status": "low_stock"})
	if err != nil {
		log.Printf("Error fetching low stock inventory: %v", err)
		return nil
	}
	var inventory []models.Inventory
	if err := cursor.All(ctx, &inventory); err != nil {
		log.Printf("Error decoding low stock inventory: %v", err)
		return nil
	}

	items := make([]models.LowStockItem, 0, len(inventory))
	for _, inv := range inventory {
		var product models.Product
		err := config.ProductCollection.FindOne(ctx, bson.M{"_id": inv.Product}).Decode(&product)
		if err != nil {
			if err != mongo.ErrNoDocuments {
				log.Printf("Error fetching product %s: %v", inv.Product.Hex(), err)
			}
			continue
		}
		items = append(items, models.LowStockItem{
			Product:      inv.Product,
			Name:         product.Name,
			CurrentStock: inv.CurrentStock,
			ReorderPoint: product.ReorderPoint,
		})
	}
	return items
}

// GetOrCreateTodaysSummary returns today's summary document, creating an
// empty one when the day has no summary yet.
func GetOrCreateTodaysSummary(ctx context.Context) (*models.DailySummary, error) {
	startOfDay, _ := DayRange(time.Now())

	var summary models.DailySummary
	err := config.DailySummaryCollection.FindOne(ctx, bson.M{"date": startOfDay}).Decode(&summary)
	if err == nil {
		return &summary, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	summary = models.DailySummary{
		ID:          primitive.NewObjectID(),
		Date:        startOfDay,
		GeneratedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	if _, err := config.DailySummaryCollection.InsertOne(ctx, summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
