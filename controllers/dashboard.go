package controllers

import (
	"context"
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
	"go.mongodb.org/mongo-driver/mongo/options"
)

func isOpenOrderStatus(status string) bool {
	return status == "pending" || status == "confirmed" || status == "preparing"
}

// reportRange parses startDate/endDate query params, defaulting to the
// first of the current month through the end of today.
func reportRange(c *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if startDate := c.Query("startDate"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			start, _ = utils.DayRange(parsed)
		}
	}
	_, end := utils.DayRange(now)
	if endDate := c.Query("endDate"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			_, end = utils.DayRange(parsed)
		}
	}
	return start, end
}

// GetTodayDashboard returns the refreshed daily summary plus live order
// counts, low stock alerts and the latest stock movements.
func GetTodayDashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startOfDay, endOfDay := utils.DayRange(time.Now())

	summary, err := utils.UpdateDailySummary(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}

	cursor, err := config.OrderCollection.Find(ctx, bson.M{
		"order_details.timestamp": bson.M{"$gte": startOfDay, "$lte": endOfDay},
	}, options.Find().SetSort(bson.D{{Key: "order_details.timestamp", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}
	var todaysOrders []models.Order
	if err := cursor.All(ctx, &todaysOrders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}

	pendingOrders := 0
	completedOrders := 0
	for _, order := range todaysOrders {
		if isOpenOrderStatus(order.OrderDetails.Status) {
			pendingOrders++
		}
		if order.OrderDetails.Status == "completed" {
			completedOrders++
		}
	}

	lowCursor, err := config.InventoryCollection.Find(ctx, bson.M{"stock_status": "low_stock"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}
	var lowStock []models.Inventory
	if err := lowCursor.All(ctx, &lowStock); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}

	alertItems := []gin.H{}
	for _, inv := range lowStock {
		var product models.Product
		if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": inv.Product}).Decode(&product); err != nil {
			continue
		}
		alertItems = append(alertItems, gin.H{
			"product":      product.Name,
			"currentStock": inv.CurrentStock,
			"reorderPoint": product.ReorderPoint,
			"category":     product.Category,
			"unit":         product.Unit,
		})
	}

	moveCursor, err := config.StockMovementCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": startOfDay, "$lte": endOfDay},
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}
	recentMovements := []models.StockMovement{}
	if err := moveCursor.All(ctx, &recentMovements); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's dashboard", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"date":    startOfDay,
			"summary": summary,
			"realTime": gin.H{
				"pendingOrders":   pendingOrders,
				"completedOrders": completedOrders,
				"totalOrders":     len(todaysOrders),
			},
			"alerts": gin.H{
				"lowStock": len(lowStock),
				"items":    alertItems,
			},
			"recentMovements": recentMovements,
		},
	})
}

// GetMonthlyStats folds the stored daily summaries of one month into
// monthly totals, category revenue, trends and top sellers.
func GetMonthlyStats(c *gin.Context) {
	target := time.Now()
	if yearStr, monthStr := c.Query("year"), c.Query("month"); yearStr != "" && monthStr != "" {
		year, errY := strconv.Atoi(yearStr)
		month, errM := strconv.Atoi(monthStr)
		if errY == nil && errM == nil && month >= 1 && month <= 12 {
			target = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, target.Location())
		}
	}
	startOfMonth, endOfMonth := utils.MonthRange(target)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.DailySummaryCollection.Find(ctx, bson.M{
		"date": bson.M{"$gte": startOfMonth, "$lte": endOfMonth},
	}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching monthly statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var summaries []models.DailySummary
	if err := cursor.All(ctx, &summaries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching monthly statistics", "error": err.Error()})
		return
	}

	monthly := gin.H{}
	var totalRevenue, totalStockIn, totalStockOut, totalProfit, totalExpenses float64
	var totalOrders, totalItemsSold int
	var revenue models.RevenueByCategory
	dailyTrends := make([]gin.H, 0, len(summaries))
	dailyBreakdown := make([]gin.H, 0, len(summaries))
	byName := map[string]*models.TopSellingItem{}

	for _, day := range summaries {
		totalRevenue += day.Sales.TotalRevenue
		totalOrders += day.Sales.TotalOrders
		totalItemsSold += day.Sales.TotalItemsSold
		totalStockIn += day.Stock.TotalStockIn
		totalStockOut += day.Stock.TotalStockOut
		totalProfit += day.Financials.NetProfit
		totalExpenses += day.Financials.Expenses

		revenue.Food += day.RevenueByCategory.Food
		revenue.Alcohol += day.RevenueByCategory.Alcohol
		revenue.Wine += day.RevenueByCategory.Wine
		revenue.Cocktail += day.RevenueByCategory.Cocktail
		revenue.SoftDrink += day.RevenueByCategory.SoftDrink
		revenue.Dessert += day.RevenueByCategory.Dessert

		dailyTrends = append(dailyTrends, gin.H{
			"date":    day.Date,
			"revenue": day.Sales.TotalRevenue,
			"orders":  day.Sales.TotalOrders,
			"profit":  day.Financials.NetProfit,
		})
		dailyBreakdown = append(dailyBreakdown, gin.H{
			"date":     day.Date,
			"revenue":  day.Sales.TotalRevenue,
			"orders":   day.Sales.TotalOrders,
			"profit":   day.Financials.NetProfit,
			"stockIn":  day.Stock.TotalStockIn,
			"stockOut": day.Stock.TotalStockOut,
		})

		for _, item := range day.TopSellingItems {
			entry, ok := byName[item.Name]
			if !ok {
				copied := item
				byName[item.Name] = &copied
				continue
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Revenue
		}
	}

	monthly["totalRevenue"] = totalRevenue
	monthly["totalOrders"] = totalOrders
	monthly["totalItemsSold"] = totalItemsSold
	monthly["totalStockIn"] = totalStockIn
	monthly["totalStockOut"] = totalStockOut
	monthly["totalProfit"] = totalProfit
	monthly["totalExpenses"] = totalExpenses

	topItems := make([]models.TopSellingItem, 0, len(byName))
	for _, entry := range byName {
		topItems = append(topItems, *entry)
	}
	sort.Slice(topItems, func(i, j int) bool {
		if topItems[i].Quantity != topItems[j].Quantity {
			return topItems[i].Quantity > topItems[j].Quantity
		}
		return topItems[i].Name < topItems[j].Name
	})
	if len(topItems) > 10 {
		topItems = topItems[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period": gin.H{
				"start": startOfMonth,
				"end":   endOfMonth,
				"month": int(startOfMonth.Month()),
				"year":  startOfMonth.Year(),
			},
			"summary":           monthly,
			"revenueByCategory": revenue,
			"dailyTrends":       dailyTrends,
			"topSellingItems":   topItems,
			"dailyBreakdown":    dailyBreakdown,
		},
	})
}

// GetProfitLoss builds a profit and loss statement directly from the
// financial records of the period.
func GetProfitLoss(c *gin.Context) {
	start, end := reportRange(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.FinancialRecordCollection.Find(ctx, bson.M{
		"transaction_date": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error generating profit & loss statement", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var records []models.FinancialRecord
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error generating profit & loss statement", "error": err.Error()})
		return
	}

	var totalRevenue, costOfGoodsSold, purchases, otherExpenses float64
	categoryTotals := map[string]float64{
		"food": 0, "alcohol": 0, "wine": 0, "cocktail": 0, "soft_drink": 0, "dessert": 0,
	}

	for _, record := range records {
		switch record.RecordType {
		case "sale":
			totalRevenue += record.TotalAmount
			for _, item := range record.Items {
				costOfGoodsSold += item.CostPrice * item.Quantity
				categoryTotals[models.AttributeRevenueCategory(item.Name)] += item.TotalPrice
			}
		case "purchase":
			purchases += record.TotalAmount
		case "expense":
			otherExpenses += record.TotalAmount
		}
	}

	expenses := purchases + otherExpenses
	grossProfit := totalRevenue - costOfGoodsSold
	netProfit := grossProfit - expenses

	grossMargin := 0.0
	netMargin := 0.0
	if totalRevenue > 0 {
		grossMargin = grossProfit / totalRevenue * 100
		netMargin = netProfit / totalRevenue * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period": gin.H{"start": start, "end": end},
			"revenue": gin.H{
				"total":           totalRevenue,
				"costOfGoodsSold": costOfGoodsSold,
				"grossProfit":     grossProfit,
				"grossMargin":     grossMargin,
			},
			"expenses": gin.H{
				"total": expenses,
				"breakdown": gin.H{
					"purchases": purchases,
					"other":     otherExpenses,
				},
			},
			"netProfit": gin.H{
				"amount": netProfit,
				"margin": netMargin,
			},
			"revenueByCategory": categoryTotals,
		},
	})
}

// GetStockReport summarizes stock movements over a period, totalled and
// grouped per product.
func GetStockReport(c *gin.Context) {
	start, end := reportRange(c)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.StockMovementCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lte": end},
	}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error generating stock report", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	movements := []models.StockMovement{}
	if err := cursor.All(ctx, &movements); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error generating stock report", "error": err.Error()})
		return
	}

	totals := models.ComputeStockSummary(movements)
	totalCost := 0.0
	for _, m := range movements {
		totalCost += m.TotalCost
	}

	type productReport struct {
		Product     primitive.ObjectID `json:"product"`
		Name        string             `json:"name"`
		Category    string             `json:"category"`
		Unit        string             `json:"unit"`
		StockIn     float64            `json:"stockIn"`
		StockOut    float64            `json:"stockOut"`
		Adjustments float64            `json:"adjustments"`
		NetChange   float64            `json:"netChange"`
		TotalCost   float64            `json:"totalCost"`
	}
	byProduct := map[primitive.ObjectID]*productReport{}

	for _, m := range movements {
		report, ok := byProduct[m.Product]
		if !ok {
			report = &productReport{Product: m.Product}
			var product models.Product
			if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": m.Product}).Decode(&product); err == nil {
				report.Name = product.Name
				report.Category = product.Category
				report.Unit = product.Unit
			}
			byProduct[m.Product] = report
		}
		switch m.Type {
		case "in":
			report.StockIn += m.Quantity
			report.NetChange += m.Quantity
		case "out":
			report.StockOut += m.Quantity
			report.NetChange -= m.Quantity
		case "adjustment":
			report.Adjustments += m.Quantity
			report.NetChange += m.Quantity
		}
		report.TotalCost += m.TotalCost
	}

	productSummary := make([]productReport, 0, len(byProduct))
	for _, report := range byProduct {
		productSummary = append(productSummary, *report)
	}
	sort.Slice(productSummary, func(i, j int) bool {
		return productSummary[i].Name < productSummary[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period": gin.H{"start": start, "end": end},
			"summary": gin.H{
				"totalStockIn":     totals.TotalStockIn,
				"totalStockOut":    totals.TotalStockOut,
				"totalAdjustments": totals.StockAdjustments,
				"totalMovements":   len(movements),
				"totalCost":        totalCost,
			},
			"productSummary": productSummary,
			"movements":      movements,
		},
	})
}

func monthRevenue(ctx context.Context, start, end time.Time) (float64, error) {
	cursor, err := config.FinancialRecordCollection.Find(ctx, bson.M{
		"record_type":      "sale",
		"payment_status":   "completed",
		"transaction_date": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var records []models.FinancialRecord
	if err := cursor.All(ctx, &records); err != nil {
		return 0, err
	}
	total := 0.0
	for _, r := range records {
		total += r.TotalAmount
	}
	return total, nil
}

// monthlyGrowth compares this month's completed sale revenue against last
// month's, as a percentage.
func monthlyGrowth(ctx context.Context) (float64, error) {
	now := time.Now()
	currentStart, currentEnd := utils.MonthRange(now)
	lastStart, lastEnd := utils.MonthRange(now.AddDate(0, -1, 0))

	current, err := monthRevenue(ctx, currentStart, currentEnd)
	if err != nil {
		return 0, err
	}
	previous, err := monthRevenue(ctx, lastStart, lastEnd)
	if err != nil {
		return 0, err
	}

	if previous == 0 {
		if current > 0 {
			return 100, nil
		}
		return 0, nil
	}
	return (current - previous) / previous * 100, nil
}

// GetDashboardOverview returns the headline metrics: today's numbers,
// month-to-date totals, stock alerts and growth.
func GetDashboardOverview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	startOfDay, endOfDay := utils.DayRange(now)
	startOfMonth, endOfMonth := utils.MonthRange(now)

	summary, err := utils.UpdateDailySummary(ctx, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	cursor, err := config.DailySummaryCollection.Find(ctx, bson.M{
		"date": bson.M{"$gte": startOfMonth, "$lte": endOfMonth},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}
	var monthlySummaries []models.DailySummary
	if err := cursor.All(ctx, &monthlySummaries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	var monthRevenueTotal, monthProfit float64
	monthOrders := 0
	for _, day := range monthlySummaries {
		monthRevenueTotal += day.Sales.TotalRevenue
		monthOrders += day.Sales.TotalOrders
		monthProfit += day.Financials.NetProfit
	}

	lowStockCount, err := config.InventoryCollection.CountDocuments(ctx, bson.M{"stock_status": "low_stock"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}
	outOfStockCount, err := config.InventoryCollection.CountDocuments(ctx, bson.M{"stock_status": "out_of_stock"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	pendingOrders, err := config.OrderCollection.CountDocuments(ctx, bson.M{
		"order_details.timestamp": bson.M{"$gte": startOfDay, "$lte": endOfDay},
		"order_details.status":    bson.M{"$in": []string{"pending", "confirmed", "preparing"}},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	totalProducts, err := config.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	invCursor, err := config.InventoryCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}
	var inventory []models.Inventory
	if err := invCursor.All(ctx, &inventory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}
	totalInventoryValue := 0.0
	for _, inv := range inventory {
		totalInventoryValue += inv.TotalValue
	}

	growth, err := monthlyGrowth(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard overview", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"today": gin.H{
				"revenue":       summary.Sales.TotalRevenue,
				"orders":        summary.Sales.TotalOrders,
				"profit":        summary.Financials.NetProfit,
				"pendingOrders": pendingOrders,
			},
			"month": gin.H{
				"totalRevenue": monthRevenueTotal,
				"totalOrders":  monthOrders,
				"totalProfit":  monthProfit,
			},
			"alerts": gin.H{
				"lowStock":      lowStockCount,
				"outOfStock":    outOfStockCount,
				"pendingOrders": pendingOrders,
			},
			"quickStats": gin.H{
				"totalProducts":       totalProducts,
				"totalInventoryValue": totalInventoryValue,
				"monthlyGrowth":       growth,
			},
		},
	})
}
