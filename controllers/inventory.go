package controllers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func currentUserID(c *gin.Context) *primitive.ObjectID {
	userID, ok := c.Get("userID")
	if !ok {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		return nil
	}
	return &oid
}

func findOrCreateInventory(ctx context.Context, productID primitive.ObjectID) (*models.Inventory, error) {
	var inventory models.Inventory
	err := config.InventoryCollection.FindOne(ctx, bson.M{"product": productID}).Decode(&inventory)
	if err == nil {
		return &inventory, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	inventory = models.Inventory{
		ID:          primitive.NewObjectID(),
		Product:     productID,
		StockStatus: "out_of_stock",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := config.InventoryCollection.InsertOne(ctx, inventory); err != nil {
		return nil, err
	}
	return &inventory, nil
}

func saveInventory(ctx context.Context, inv *models.Inventory) error {
	update := bson.M{"$set": bson.M{
		"current_stock":   inv.CurrentStock,
		"reserved_stock":  inv.ReservedStock,
		"available_stock": inv.AvailableStock,
		"total_value":     inv.TotalValue,
		"average_cost":    inv.AverageCost,
		"stock_status":    inv.StockStatus,
		"last_restocked":  inv.LastRestocked,
		"last_sold":       inv.LastSold,
		"updated_at":      inv.UpdatedAt,
	}}
	_, err := config.InventoryCollection.UpdateOne(ctx, bson.M{"_id": inv.ID}, update)
	return err
}

// GetInventory lists inventory records with optional status filtering
// and pagination.
func GetInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["stock_status"] = status
	}
	if c.Query("lowStock") == "true" {
		filter["stock_status"] = "low_stock"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The category lives on the product, so resolve matching product ids
	// first and constrain the inventory query. Counting before skip/limit
	// keeps the pagination figures honest.
	if category := c.Query("category"); category != "" {
		productCursor, err := config.ProductCollection.Find(ctx, bson.M{"category": category},
			options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory", "error": err.Error()})
			return
		}
		var matched []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := productCursor.All(ctx, &matched); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory", "error": err.Error()})
			return
		}
		ids := make([]primitive.ObjectID, 0, len(matched))
		for _, p := range matched {
			ids = append(ids, p.ID)
		}
		filter["product"] = bson.M{"$in": ids}
	}

	total, err := config.InventoryCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.InventoryCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var inventory []models.Inventory
	if err := cursor.All(ctx, &inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory", "error": err.Error()})
		return
	}

	type inventoryWithProduct struct {
		models.Inventory `bson:",inline"`
		ProductInfo      *models.Product `json:"productInfo,omitempty"`
	}

	items := []inventoryWithProduct{}
	for _, inv := range inventory {
		entry := inventoryWithProduct{Inventory: inv}
		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": inv.Product}).Decode(&product); err == nil {
			entry.ProductInfo = &product
		}
		items = append(items, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(items),
		"data": gin.H{
			"inventory": items,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

func GetInventoryByProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var inventory models.Inventory
	err = config.InventoryCollection.FindOne(ctx, bson.M{"product": productID}).Decode(&inventory)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Inventory item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory item", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"inventory": inventory}})
}

// SimpleStockIn adds stock to a product, writes a ledger entry and
// refreshes the daily summary.
func SimpleStockIn(c *gin.Context) {
	var input struct {
		ProductID string  `json:"productId"`
		Quantity  float64 `json:"quantity"`
		CostPrice float64 `json:"costPrice"`
		Supplier  string  `json:"supplier"`
		Notes     string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" || input.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product ID and quantity are required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding stock", "error": err.Error()})
		return
	}

	inventory, err := findOrCreateInventory(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding stock", "error": err.Error()})
		return
	}

	unitCost := product.CostPrice
	if input.CostPrice > 0 {
		unitCost = input.CostPrice
	}

	previousStock := inventory.CurrentStock
	now := time.Now()
	inventory.CurrentStock += input.Quantity
	inventory.LastRestocked = &now
	inventory.Recalculate(unitCost)

	if err := saveInventory(ctx, inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding stock", "error": err.Error()})
		return
	}

	if input.CostPrice > 0 && input.CostPrice != product.CostPrice {
		margin := models.ComputeProfitMargin(input.CostPrice, product.SellingPrice)
		config.ProductCollection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": bson.M{
			"cost_price":    input.CostPrice,
			"profit_margin": margin,
			"updated_at":    now,
		}})
	}

	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("Added %g %s of %s", input.Quantity, product.Unit, product.Name)
	}

	movement := models.StockMovement{
		ID:            primitive.NewObjectID(),
		Product:       productID,
		Type:          "in",
		Quantity:      input.Quantity,
		Reference:     fmt.Sprintf("STOCK-IN-%d", now.UnixMilli()),
		Source:        "supplier",
		Destination:   "warehouse",
		UnitCost:      unitCost,
		TotalCost:     input.Quantity * unitCost,
		PreviousStock: previousStock,
		NewStock:      inventory.CurrentStock,
		Reason:        "Stock purchase",
		Notes:         notes,
		CreatedBy:     currentUserID(c),
		CreatedAt:     now,
	}
	if _, err := config.StockMovementCollection.InsertOne(ctx, movement); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding stock", "error": err.Error()})
		return
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Stock added successfully for %s", product.Name),
		"data": gin.H{
			"product":       product.Name,
			"quantityAdded": input.Quantity,
			"previousStock": previousStock,
			"newStock":      inventory.CurrentStock,
			"movement":      movement,
		},
	})
}

// SimpleStockOut removes stock for waste or damage, rejecting removals
// beyond the available quantity.
func SimpleStockOut(c *gin.Context) {
	var input struct {
		ProductID string  `json:"productId"`
		Quantity  float64 `json:"quantity"`
		Reason    string  `json:"reason"`
		Notes     string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" || input.Quantity == 0 || input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product ID, quantity, and reason are required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error removing stock", "error": err.Error()})
		return
	}

	var inventory models.Inventory
	err = config.InventoryCollection.FindOne(ctx, bson.M{"product": productID}).Decode(&inventory)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Inventory not found for this product"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error removing stock", "error": err.Error()})
		return
	}

	if inventory.CurrentStock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Insufficient stock. Available: %g, Requested: %g", inventory.CurrentStock, input.Quantity),
		})
		return
	}

	previousStock := inventory.CurrentStock
	now := time.Now()
	inventory.CurrentStock -= input.Quantity
	inventory.Recalculate(product.CostPrice)

	if err := saveInventory(ctx, &inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error removing stock", "error": err.Error()})
		return
	}

	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("Removed %g %s of %s due to %s", input.Quantity, product.Unit, product.Name, input.Reason)
	}

	movement := models.StockMovement{
		ID:            primitive.NewObjectID(),
		Product:       productID,
		Type:          "out",
		Quantity:      input.Quantity,
		Reference:     fmt.Sprintf("STOCK-OUT-%d", now.UnixMilli()),
		Source:        "warehouse",
		Destination:   "waste",
		UnitCost:      product.CostPrice,
		TotalCost:     input.Quantity * product.CostPrice,
		PreviousStock: previousStock,
		NewStock:      inventory.CurrentStock,
		Reason:        input.Reason,
		Notes:         notes,
		CreatedBy:     currentUserID(c),
		CreatedAt:     now,
	}
	if _, err := config.StockMovementCollection.InsertOne(ctx, movement); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error removing stock", "error": err.Error()})
		return
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Stock removed successfully for %s", product.Name),
		"data": gin.H{
			"product":         product.Name,
			"quantityRemoved": input.Quantity,
			"previousStock":   previousStock,
			"newStock":        inventory.CurrentStock,
			"reason":          input.Reason,
			"movement":        movement,
		},
	})
}

// QuickStockAdjust sets the stock to an absolute quantity and records
// the difference as an adjustment movement.
func QuickStockAdjust(c *gin.Context) {
	var input struct {
		ProductID   string   `json:"productId"`
		NewQuantity *float64 `json:"newQuantity"`
		Reason      string   `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ProductID == "" || input.NewQuantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Product ID and new quantity are required"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adjusting stock", "error": err.Error()})
		return
	}

	inventory, err := findOrCreateInventory(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adjusting stock", "error": err.Error()})
		return
	}

	previousStock := inventory.CurrentStock
	newQuantity := *input.NewQuantity
	difference := newQuantity - previousStock
	now := time.Now()

	inventory.CurrentStock = newQuantity
	inventory.Recalculate(product.CostPrice)

	if err := saveInventory(ctx, inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adjusting stock", "error": err.Error()})
		return
	}

	reason := input.Reason
	if reason == "" {
		reason = "Stock adjustment"
	}

	movement := models.StockMovement{
		ID:            primitive.NewObjectID(),
		Product:       productID,
		Type:          "adjustment",
		Quantity:      math.Abs(difference),
		Reference:     fmt.Sprintf("ADJ-%d", now.UnixMilli()),
		Source:        "adjustment",
		Destination:   "warehouse",
		UnitCost:      product.CostPrice,
		TotalCost:     math.Abs(difference) * product.CostPrice,
		PreviousStock: previousStock,
		NewStock:      newQuantity,
		Reason:        reason,
		Notes:         fmt.Sprintf("Stock adjusted from %g to %g", previousStock, newQuantity),
		CreatedBy:     currentUserID(c),
		CreatedAt:     now,
	}
	if _, err := config.StockMovementCollection.InsertOne(ctx, movement); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adjusting stock", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Stock adjusted successfully for %s", product.Name),
		"data": gin.H{
			"product":       product.Name,
			"previousStock": previousStock,
			"newStock":      newQuantity,
			"adjustment":    difference,
			"movement":      movement,
		},
	})
}

// BulkStockIn restocks many products in one call. Items are processed
// independently; failures are reported next to the successes.
func BulkStockIn(c *gin.Context) {
	var input struct {
		Items    []models.StockInItem `json:"items"`
		Supplier string               `json:"supplier"`
		Notes    string               `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Items array is required and cannot be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := models.BulkStockResult{
		Succeeded: []models.StockInResult{},
		Failed:    []models.BulkFailure{},
	}

	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity == 0 {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: "missing productId or quantity"})
			continue
		}

		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: "invalid product ID"})
			continue
		}

		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: fmt.Sprintf("product not found: %s", item.ProductID)})
			continue
		}

		inventory, err := findOrCreateInventory(ctx, productID)
		if err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: err.Error()})
			continue
		}

		unitCost := product.CostPrice
		if item.CostPrice > 0 {
			unitCost = item.CostPrice
		}

		previousStock := inventory.CurrentStock
		now := time.Now()
		inventory.CurrentStock += item.Quantity
		inventory.LastRestocked = &now
		inventory.Recalculate(unitCost)

		if err := saveInventory(ctx, inventory); err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: err.Error()})
			continue
		}

		if item.CostPrice > 0 && item.CostPrice != product.CostPrice {
			margin := models.ComputeProfitMargin(item.CostPrice, product.SellingPrice)
			config.ProductCollection.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": bson.M{
				"cost_price":    item.CostPrice,
				"profit_margin": margin,
				"updated_at":    now,
			}})
		}

		notes := input.Notes
		if notes == "" {
			notes = fmt.Sprintf("Added %g %s of %s", item.Quantity, product.Unit, product.Name)
		}

		movement := models.StockMovement{
			ID:            primitive.NewObjectID(),
			Product:       productID,
			Type:          "in",
			Quantity:      item.Quantity,
			Reference:     fmt.Sprintf("BULK-IN-%d", now.UnixMilli()),
			Source:        "supplier",
			Destination:   "warehouse",
			UnitCost:      unitCost,
			TotalCost:     item.Quantity * unitCost,
			PreviousStock: previousStock,
			NewStock:      inventory.CurrentStock,
			Reason:        "Bulk stock purchase",
			Notes:         notes,
			CreatedBy:     currentUserID(c),
			CreatedAt:     now,
		}
		if _, err := config.StockMovementCollection.InsertOne(ctx, movement); err != nil {
			result.Failed = append(result.Failed, models.BulkFailure{Input: item, Reason: err.Error()})
			continue
		}

		result.Succeeded = append(result.Succeeded, models.StockInResult{
			Product:       product.Name,
			Quantity:      item.Quantity,
			PreviousStock: previousStock,
			NewStock:      inventory.CurrentStock,
		})
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Bulk stock in completed with %d successes and %d errors", len(result.Succeeded), len(result.Failed)),
		"data": gin.H{
			"processed": len(result.Succeeded),
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
		},
	})
}

// GetDailyMovements lists the stock ledger for one day with totals per
// movement type.
func GetDailyMovements(c *gin.Context) {
	targetDate := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid date format"})
			return
		}
		targetDate = parsed
	}
	startOfDay, endOfDay := utils.DayRange(targetDate)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.StockMovementCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": startOfDay, "$lte": endOfDay},
	}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching daily movements", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	movements := []models.StockMovement{}
	if err := cursor.All(ctx, &movements); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching daily movements", "error": err.Error()})
		return
	}

	summary := models.ComputeStockSummary(movements)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"date": startOfDay,
			"summary": gin.H{
				"stockIn":        summary.TotalStockIn,
				"stockOut":       summary.TotalStockOut,
				"adjustments":    summary.StockAdjustments,
				"totalMovements": len(movements),
			},
			"movements": movements,
			"total":     len(movements),
		},
	})
}

func GetLowStockAlerts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.InventoryCollection.Find(ctx, bson.M{"stock_status": "low_stock"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching low stock alerts", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	alerts := []models.Inventory{}
	if err := cursor.All(ctx, &alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching low stock alerts", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(alerts),
		"data":    gin.H{"alerts": alerts},
	})
}

// GetInventoryStats summarizes the stock position: counts by status,
// total value and a per-category breakdown.
func GetInventoryStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	totalProducts, err := config.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory statistics", "error": err.Error()})
		return
	}
	totalInventory, err := config.InventoryCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory statistics", "error": err.Error()})
		return
	}

	cursor, err := config.InventoryCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var inventory []models.Inventory
	if err := cursor.All(ctx, &inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching inventory statistics", "error": err.Error()})
		return
	}

	byStatus := map[string]int{}
	totalValue := 0.0
	type categoryAgg struct {
		totalItems int
		totalValue float64
		totalStock float64
	}
	byCategory := map[string]*categoryAgg{}

	for _, inv := range inventory {
		byStatus[inv.StockStatus]++
		totalValue += inv.TotalValue

		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": inv.Product}).Decode(&product); err != nil {
			continue
		}
		agg, ok := byCategory[product.Category]
		if !ok {
			agg = &categoryAgg{}
			byCategory[product.Category] = agg
		}
		agg.totalItems++
		agg.totalValue += inv.TotalValue
		agg.totalStock += inv.CurrentStock
	}

	stockStatus := []gin.H{}
	for status, count := range byStatus {
		stockStatus = append(stockStatus, gin.H{"_id": status, "count": count})
	}

	categoryStats := []gin.H{}
	for category, agg := range byCategory {
		categoryStats = append(categoryStats, gin.H{
			"_id":          category,
			"totalItems":   agg.totalItems,
			"totalValue":   agg.totalValue,
			"averageStock": agg.totalStock / float64(agg.totalItems),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"totalProducts":  totalProducts,
			"totalInventory": totalInventory,
			"stockStatus":    stockStatus,
			"totalValue":     totalValue,
			"categoryStats":  categoryStats,
		},
	})
}

// ProcessOrder deducts the order's cart items from stock, writing one
// ledger entry per fulfilled line. Lines without stock are reported and
// skipped; the order completes when at least one line went through.
func ProcessOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var order models.Order
	err = config.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error processing order", "error": err.Error()})
		return
	}

	if order.OrderDetails.Status == "completed" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Order already completed"})
		return
	}

	stockMovements := []models.StockMovement{}
	processErrors := []string{}

	for _, item := range order.CartItems {
		productFilter := bson.M{"name": item.Name}
		if oid, err := primitive.ObjectIDFromHex(item.ID); err == nil {
			productFilter = bson.M{"$or": []bson.M{{"_id": oid}, {"name": item.Name}}}
		}

		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, productFilter).Decode(&product); err != nil {
			processErrors = append(processErrors, fmt.Sprintf("Product not found: %s", item.Name))
			continue
		}

		var inventory models.Inventory
		if err := config.InventoryCollection.FindOne(ctx, bson.M{"product": product.ID}).Decode(&inventory); err != nil {
			processErrors = append(processErrors, fmt.Sprintf("Inventory not found for product: %s", item.Name))
			continue
		}

		quantity := float64(item.Quantity)
		if inventory.CurrentStock < quantity {
			processErrors = append(processErrors, fmt.Sprintf("Insufficient stock for: %s. Available: %g, Required: %d", item.Name, inventory.CurrentStock, item.Quantity))
			continue
		}

		previousStock := inventory.CurrentStock
		now := time.Now()
		inventory.CurrentStock -= quantity
		inventory.LastSold = &now
		inventory.Recalculate(product.CostPrice)

		if err := saveInventory(ctx, &inventory); err != nil {
			processErrors = append(processErrors, fmt.Sprintf("Error processing %s: %v", item.Name, err))
			continue
		}

		movement := models.StockMovement{
			ID:            primitive.NewObjectID(),
			Product:       product.ID,
			Type:          "out",
			Quantity:      quantity,
			Reference:     order.OrderDetails.OrderID,
			Source:        "order",
			Destination:   "customer",
			Order:         &order.ID,
			UnitCost:      product.CostPrice,
			TotalCost:     quantity * product.CostPrice,
			PreviousStock: previousStock,
			NewStock:      inventory.CurrentStock,
			Reason:        "Order fulfillment",
			CreatedBy:     currentUserID(c),
			CreatedAt:     now,
		}
		if _, err := config.StockMovementCollection.InsertOne(ctx, movement); err != nil {
			processErrors = append(processErrors, fmt.Sprintf("Error processing %s: %v", item.Name, err))
			continue
		}

		stockMovements = append(stockMovements, movement)
	}

	if len(processErrors) > 0 && len(stockMovements) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to process order",
			"errors":  processErrors,
		})
		return
	}

	if len(stockMovements) > 0 {
		config.OrderCollection.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": bson.M{
			"order_details.status": "completed",
			"updated_at":           time.Now(),
		}})
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Order processed with %d items successful, %d errors", len(stockMovements), len(processErrors)),
		"data": gin.H{
			"processedItems": len(stockMovements),
			"errors":         processErrors,
			"stockMovements": stockMovements,
		},
	})
}
