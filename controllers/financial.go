package controllers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
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

// CreateRecordFromOrder books an order as a sale record. Cost prices are
// pulled from the stock movements the order produced, so the record
// carries real margins rather than list prices.
func CreateRecordFromOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var order models.Order
	err = config.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating financial record", "error": err.Error()})
		return
	}

	count, err := config.FinancialRecordCollection.CountDocuments(ctx, bson.M{"order": orderID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating financial record", "error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Financial record already exists for this order"})
		return
	}

	items := make([]models.FinancialItem, 0, len(order.CartItems))
	totalCost := 0.0
	totalProfit := 0.0
	for _, item := range order.CartItems {
		costPrice := 0.0
		movementFilter := bson.M{"order": orderID}
		if oid, err := primitive.ObjectIDFromHex(item.ID); err == nil {
			movementFilter["product"] = oid
		}
		var movement models.StockMovement
		if err := config.StockMovementCollection.FindOne(ctx, movementFilter).Decode(&movement); err == nil {
			costPrice = movement.UnitCost
		}

		quantity := float64(item.Quantity)
		line := models.FinancialItem{
			Name:       item.Name,
			Quantity:   quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.TotalPrice,
			CostPrice:  costPrice,
			Profit:     (item.Price - costPrice) * quantity,
		}
		totalCost += costPrice * quantity
		totalProfit += line.Profit
		items = append(items, line)
	}

	record := models.FinancialRecord{
		ID:            primitive.NewObjectID(),
		RecordType:    "sale",
		Reference:     order.OrderDetails.OrderID,
		Order:         &orderID,
		Amount:        order.Summary.Subtotal,
		Tax:           order.Summary.Tax,
		PaymentMethod: order.OrderDetails.PaymentMethod,
		PaymentStatus: order.OrderDetails.PaymentStatus,
		Items:         items,
		Party: models.Party{
			Name:    order.CustomerInfo.Name,
			Type:    "customer",
			Contact: order.CustomerInfo.Phone,
		},
		Description:     fmt.Sprintf("Order %s", order.OrderDetails.OrderID),
		Category:        "food_sales",
		TransactionDate: order.OrderDetails.Timestamp,
		CreatedBy:       currentUserID(c),
		CreatedAt:       time.Now(),
	}
	record.Finalize()

	if _, err := config.FinancialRecordCollection.InsertOne(ctx, record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating financial record", "error": err.Error()})
		return
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Financial record created successfully",
		"data": gin.H{
			"record": record,
			"summary": gin.H{
				"totalRevenue": order.Summary.Total,
				"totalCost":    totalCost,
				"totalProfit":  totalProfit,
			},
		},
	})
}

func GetFinancialRecords(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if recordType := c.Query("type"); recordType != "" {
		filter["record_type"] = recordType
	}

	dateFilter := bson.M{}
	if startDate := c.Query("startDate"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			dateFilter["$gte"] = parsed
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			dateFilter["$lte"] = parsed
		}
	}
	if len(dateFilter) > 0 {
		filter["transaction_date"] = dateFilter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.FinancialRecordCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching financial records", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "transaction_date", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.FinancialRecordCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching financial records", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	records := []models.FinancialRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching financial records", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(records),
		"data": gin.H{
			"records": records,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

// GetFinancialStats reports revenue, costs and daily revenue for a date
// range, defaulting to the current month.
func GetFinancialStats(c *gin.Context) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if startDate := c.Query("startDate"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			start = time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, parsed.Location())
		}
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999000000, now.Location())
	if endDate := c.Query("endDate"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			end = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 999000000, parsed.Location())
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.FinancialRecordCollection.Find(ctx, bson.M{
		"transaction_date": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching financial statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var records []models.FinancialRecord
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching financial statistics", "error": err.Error()})
		return
	}

	totalRevenue := 0.0
	totalSales := 0
	totalExpenses := 0.0
	totalTransactions := 0
	totalCost := 0.0
	totalProfit := 0.0
	type dayRevenue struct {
		revenue float64
		sales   int
	}
	byDay := map[string]*dayRevenue{}

	for _, r := range records {
		switch r.RecordType {
		case "sale":
			if r.PaymentStatus != "completed" {
				continue
			}
			totalRevenue += r.TotalAmount
			totalSales++
			for _, item := range r.Items {
				totalCost += item.CostPrice * item.Quantity
				totalProfit += item.Profit
			}
			day := r.TransactionDate.Format("2006-01-02")
			agg, ok := byDay[day]
			if !ok {
				agg = &dayRevenue{}
				byDay[day] = agg
			}
			agg.revenue += r.TotalAmount
			agg.sales++
		case "purchase", "expense":
			totalExpenses += r.TotalAmount
			totalTransactions++
		}
	}

	averageSale := 0.0
	if totalSales > 0 {
		averageSale = totalRevenue / float64(totalSales)
	}
	netProfit := totalRevenue - totalExpenses

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	dailyRevenue := make([]gin.H, 0, len(days))
	for _, day := range days {
		dailyRevenue = append(dailyRevenue, gin.H{
			"date":    day,
			"revenue": byDay[day].revenue,
			"sales":   byDay[day].sales,
		})
	}

	profitMargin := 0.0
	if totalRevenue > 0 {
		profitMargin = netProfit / totalRevenue * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period": gin.H{"start": start, "end": end},
			"revenue": gin.H{
				"total":      totalRevenue,
				"salesCount": totalSales,
				"average":    averageSale,
			},
			"costs": gin.H{
				"cogs":        totalCost,
				"expenses":    totalExpenses,
				"grossProfit": totalProfit,
				"netProfit":   netProfit,
			},
			"dailyRevenue": dailyRevenue,
			"profitMargin": profitMargin,
		},
	})
}

func CreateExpense(c *gin.Context) {
	var input struct {
		Amount        float64 `json:"amount"`
		Description   string  `json:"description"`
		Category      string  `json:"category"`
		PaymentMethod string  `json:"paymentMethod"`
		Notes         string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Amount == 0 || input.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Amount and description are required"})
		return
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	category := input.Category
	if category == "" {
		category = "operating_expense"
	}

	now := time.Now()
	record := models.FinancialRecord{
		ID:              primitive.NewObjectID(),
		RecordType:      "expense",
		Reference:       fmt.Sprintf("EXP-%d", now.UnixMilli()),
		Amount:          input.Amount,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "completed",
		Description:     input.Description,
		Category:        category,
		Notes:           input.Notes,
		TransactionDate: now,
		CreatedBy:       currentUserID(c),
		CreatedAt:       now,
	}
	record.Finalize()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.FinancialRecordCollection.InsertOne(ctx, record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating expense record", "error": err.Error()})
		return
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Expense recorded successfully",
		"data":    gin.H{"record": record},
	})
}

func CreatePurchase(c *gin.Context) {
	var input struct {
		Amount        float64                `json:"amount"`
		Description   string                 `json:"description"`
		Supplier      string                 `json:"supplier"`
		Items         []models.FinancialItem `json:"items"`
		PaymentMethod string                 `json:"paymentMethod"`
		Notes         string                 `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Amount == 0 || input.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Amount and description are required"})
		return
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	now := time.Now()
	record := models.FinancialRecord{
		ID:              primitive.NewObjectID(),
		RecordType:      "purchase",
		Reference:       fmt.Sprintf("PUR-%d", now.UnixMilli()),
		Amount:          input.Amount,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "completed",
		Items:           input.Items,
		Party:           models.Party{Name: input.Supplier, Type: "supplier"},
		Description:     input.Description,
		Category:        "inventory_purchase",
		Notes:           input.Notes,
		TransactionDate: now,
		CreatedBy:       currentUserID(c),
		CreatedAt:       now,
	}
	record.Finalize()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.FinancialRecordCollection.InsertOne(ctx, record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating purchase record", "error": err.Error()})
		return
	}

	utils.RefreshTodaysSummary()

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Purchase recorded successfully",
		"data":    gin.H{"record": record},
	})
}
