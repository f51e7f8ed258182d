package controllers

import (
	"context"
	"fmt"
	"log"
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

// CreateOrder persists a new order with a generated order ID, then
// emails the customer if an address was given.
func CreateOrder(c *gin.Context) {
	var input struct {
		OrderDetails models.OrderDetails `json:"orderDetails"`
		CustomerInfo models.CustomerInfo `json:"customerInfo"`
		CartItems    []models.CartItem   `json:"cartItems"`
		Summary      models.OrderSummary `json:"summary"`
		DeliveryInfo models.DeliveryInfo `json:"deliveryInfo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order data", "error": err.Error()})
		return
	}

	if input.CustomerInfo.Name == "" || input.CustomerInfo.Phone == "" || input.CustomerInfo.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Customer name, phone, and location are required"})
		return
	}
	if len(input.CartItems) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Cart items are required"})
		return
	}

	now := time.Now()
	order := models.Order{
		ID:           primitive.NewObjectID(),
		OrderDetails: input.OrderDetails,
		CustomerInfo: input.CustomerInfo,
		CartItems:    input.CartItems,
		Summary:      input.Summary,
		DeliveryInfo: input.DeliveryInfo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	order.OrderDetails.OrderID = models.GenerateOrderID()
	if order.OrderDetails.Timestamp.IsZero() {
		order.OrderDetails.Timestamp = now
	}
	if order.OrderDetails.Status == "" {
		order.OrderDetails.Status = "pending"
	}
	order.Summary.ItemCount = len(input.CartItems)

	if userID, ok := c.Get("userID"); ok {
		if oid, err := primitive.ObjectIDFromHex(userID.(string)); err == nil {
			order.CreatedBy = &oid
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := config.OrderCollection.InsertOne(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating order", "error": err.Error()})
		return
	}

	if order.CustomerInfo.Email != "" {
		if err := utils.SendOrderConfirmation(order, order.CustomerInfo.Email); err != nil {
			log.Printf("Order confirmation email failed: %v", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Order created successfully",
		"data":    gin.H{"order": order},
	})
}

// GetAllOrders lists orders with filtering and pagination.
func GetAllOrders(c *gin.Context) {
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
		filter["order_details.status"] = status
	}
	if phone := c.Query("customerPhone"); phone != "" {
		filter["customer_info.phone"] = phone
	}
	if date := c.Query("date"); date != "" {
		if day, err := time.Parse("2006-01-02", date); err == nil {
			start, end := utils.DayRange(day)
			filter["order_details.timestamp"] = bson.M{"$gte": start, "$lte": end}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.OrderCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching orders", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "order_details.timestamp", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching orders", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching orders", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data": gin.H{
			"orders": orders,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

func GetOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = config.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching order", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"order": order}})
}

func GetOrdersByCustomer(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order_details.timestamp", Value: -1}})
	cursor, err := config.OrderCollection.Find(ctx, bson.M{"customer_info.phone": c.Param("phone")}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching customer orders", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching customer orders", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data":    gin.H{"orders": orders},
	})
}

// UpdateOrderStatus changes the order status and notifies the customer
// by email when one is on file.
func UpdateOrderStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err = config.OrderCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating order status", "error": err.Error()})
		return
	}

	previousStatus := order.OrderDetails.Status
	order.OrderDetails.Status = input.Status
	order.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"order_details.status": input.Status,
		"updated_at":           order.UpdatedAt,
	}}
	if input.Notes != "" {
		order.CustomerInfo.Notes = input.Notes
		update["$set"].(bson.M)["customer_info.notes"] = input.Notes
	}

	if _, err := config.OrderCollection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating order status", "error": err.Error()})
		return
	}

	if order.CustomerInfo.Email != "" {
		if err := utils.SendOrderStatusUpdate(order, order.CustomerInfo.Email, previousStatus); err != nil {
			log.Printf("Order status update email failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Order status updated to %s", input.Status),
		"data":    gin.H{"order": order},
	})
}

func UpdatePaymentStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	var input struct {
		PaymentStatus string `json:"paymentStatus" binding:"required"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Payment status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	set := bson.M{
		"order_details.payment_status": input.PaymentStatus,
		"updated_at":                   time.Now(),
	}
	if input.PaymentMethod != "" {
		set["order_details.payment_method"] = input.PaymentMethod
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err = config.OrderCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&order)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating payment status", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Payment status updated to %s", input.PaymentStatus),
		"data":    gin.H{"order": order},
	})
}

func GetTodaysOrders(c *gin.Context) {
	start, end := utils.DayRange(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order_details.timestamp", Value: -1}})
	cursor, err := config.OrderCollection.Find(ctx, bson.M{
		"order_details.timestamp": bson.M{"$gte": start, "$lte": end},
	}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's orders", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's orders", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(orders),
		"data":    gin.H{"orders": orders},
	})
}

// GetOrderStats aggregates orders over a date range: totals, breakdown
// by status, popular items and per-day trend.
func GetOrderStats(c *gin.Context) {
	now := time.Now()
	start, end := utils.DayRange(now)
	if s := c.Query("startDate"); s != "" {
		if parsed, err := time.Parse("2006-01-02", s); err == nil {
			start, _ = utils.DayRange(parsed)
		}
	}
	if e := c.Query("endDate"); e != "" {
		if parsed, err := time.Parse("2006-01-02", e); err == nil {
			_, end = utils.DayRange(parsed)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cursor, err := config.OrderCollection.Find(ctx, bson.M{
		"order_details.timestamp": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching order statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching order statistics", "error": err.Error()})
		return
	}

	totalRevenue := 0.0
	type statusAgg struct {
		count   int
		revenue float64
	}
	byStatus := map[string]*statusAgg{}
	type dayAgg struct {
		orders  int
		revenue float64
	}
	byDay := map[string]*dayAgg{}

	for _, o := range orders {
		totalRevenue += o.Summary.Total

		s, ok := byStatus[o.OrderDetails.Status]
		if !ok {
			s = &statusAgg{}
			byStatus[o.OrderDetails.Status] = s
		}
		s.count++
		s.revenue += o.Summary.Total

		day := o.OrderDetails.Timestamp.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &dayAgg{}
			byDay[day] = d
		}
		d.orders++
		d.revenue += o.Summary.Total
	}

	averageOrderValue := 0.0
	if len(orders) > 0 {
		averageOrderValue = totalRevenue / float64(len(orders))
	}

	ordersByStatus := []gin.H{}
	for status, agg := range byStatus {
		ordersByStatus = append(ordersByStatus, gin.H{
			"_id":     status,
			"count":   agg.count,
			"revenue": agg.revenue,
		})
	}

	popularItems := models.ComputeTopSellingItems(orders, 10)

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	dailyOrders := make([]gin.H, 0, len(days))
	for _, day := range days {
		dailyOrders = append(dailyOrders, gin.H{
			"_id":     day,
			"orders":  byDay[day].orders,
			"revenue": byDay[day].revenue,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period":            gin.H{"start": start, "end": end},
			"totalOrders":       len(orders),
			"totalRevenue":      totalRevenue,
			"averageOrderValue": averageOrderValue,
			"ordersByStatus":    ordersByStatus,
			"popularItems":      popularItems,
			"dailyOrders":       dailyOrders,
		},
	})
}

func DeleteOrder(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.OrderCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting order", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Order deleted successfully", "data": nil})
}

// SendDailyOrdersReport emails today's order statistics to every
// verified admin.
func SendDailyOrdersReport(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admins, err := verifiedAdmins(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending daily report", "error": err.Error()})
		return
	}
	if len(admins) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No admin users found"})
		return
	}

	start, end := utils.DayRange(time.Now())
	cursor, err := config.OrderCollection.Find(ctx, bson.M{
		"order_details.timestamp": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending daily report", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending daily report", "error": err.Error()})
		return
	}

	totalRevenue := 0.0
	byStatus := map[string]int{}
	for _, o := range orders {
		totalRevenue += o.OrderDetails.TotalAmount
		byStatus[o.OrderDetails.Status]++
	}

	report := utils.DailyOrderReport{
		Date:           time.Now().Format("Mon Jan 2 2006"),
		TotalOrders:    len(orders),
		TotalRevenue:   totalRevenue,
		OrdersByStatus: byStatus,
		PopularItems:   models.ComputeTopSellingItems(orders, 5),
	}

	for _, admin := range admins {
		if err := utils.SendDailyOrderReport(admin, report); err != nil {
			log.Printf("daily orders report failed for %s: %v", admin.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Daily orders report sent to all admins",
		"data": gin.H{
			"recipients": len(admins),
			"report":     report,
		},
	})
}
