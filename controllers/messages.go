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

func verifiedAdmins(ctx context.Context) ([]models.User, error) {
	cursor, err := config.UserCollection.Find(ctx, bson.M{"status": "admin", "email_verified": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []models.User
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// CreateMessage files a customer message, derives its type, priority and
// category, and notifies the customer and every verified admin.
func CreateMessage(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Message  string `json:"message"`
		Date     string `json:"date"`
		Time     string `json:"time"`
		Guests   int    `json:"guests"`
		Type     string `json:"type"`
		Category string `json:"category"`
		Source   string `json:"source"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Email == "" || input.Phone == "" || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name, email, phone, and message are required"})
		return
	}

	var date *time.Time
	if input.Date != "" {
		if parsed, err := time.Parse("2006-01-02", input.Date); err == nil {
			date = &parsed
		}
	}

	msgType := models.DeriveType(input.Type, date, input.Time, input.Guests)
	category := input.Category
	if category == "" {
		category = models.DeriveCategory(input.Message)
	}
	source := input.Source
	if source == "" {
		source = "website"
	}

	now := time.Now()
	message := models.Message{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		Date:      date,
		Time:      input.Time,
		Guests:    input.Guests,
		Type:      msgType,
		Status:    "new",
		Priority:  models.DerivePriority(msgType, input.Message),
		Responses: []models.MessageResponse{},
		Category:  category,
		Source:    source,
		CreatedBy: currentUserID(c),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := config.MessageCollection.InsertOne(ctx, message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending message", "error": err.Error()})
		return
	}

	if err := utils.SendMessageConfirmation(message); err != nil {
		log.Printf("message confirmation email failed: %v", err)
	}

	admins, err := verifiedAdmins(ctx)
	if err == nil {
		for _, admin := range admins {
			if err := utils.SendNewMessageNotification(admin, message); err != nil {
				log.Printf("admin message notification failed for %s: %v", admin.Email, err)
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Message sent successfully. Confirmation email sent.",
		"data":    gin.H{"message": message},
	})
}

func GetAllMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}

	filter := bson.M{}
	if msgType := c.Query("type"); msgType != "" {
		filter["type"] = msgType
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}
	if priority := c.Query("priority"); priority != "" {
		filter["priority"] = priority
	}

	dateFilter := bson.M{}
	if startDate := c.Query("startDate"); startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			start, _ := utils.DayRange(parsed)
			dateFilter["$gte"] = start
		}
	}
	if endDate := c.Query("endDate"); endDate != "" {
		if parsed, err := time.Parse("2006-01-02", endDate); err == nil {
			_, end := utils.DayRange(parsed)
			dateFilter["$lte"] = end
		}
	}
	if len(dateFilter) > 0 {
		filter["created_at"] = dateFilter
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.MessageCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching messages", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.MessageCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching messages", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching messages", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(messages),
		"data": gin.H{
			"messages": messages,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

// GetMessage fetches one message, marking a new message as read.
func GetMessage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var message models.Message
	err = config.MessageCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching message", "error": err.Error()})
		return
	}

	if message.Status == "new" {
		message.Status = "read"
		message.UpdatedAt = time.Now()
		config.MessageCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
			"status":     "read",
			"updated_at": message.UpdatedAt,
		}})
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"message": message}})
}

func UpdateMessageStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message ID"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Status is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var message models.Message
	err = config.MessageCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&message)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating message status", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Message status updated to %s", input.Status),
		"data":    gin.H{"message": message},
	})
}

// AddResponse appends a staff reply. Internal notes stay in-house;
// customer-facing replies also go out by email.
func AddResponse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message ID"})
		return
	}

	var input struct {
		Response string `json:"response"`
		Internal bool   `json:"internal"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Response == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Response message is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var message models.Message
	err = config.MessageCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&message)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding response", "error": err.Error()})
		return
	}

	now := time.Now()
	response := models.MessageResponse{
		Message:   input.Response,
		RepliedBy: currentUserID(c),
		RepliedAt: now,
		Internal:  input.Internal,
	}

	update := bson.M{
		"$push": bson.M{"responses": response},
		"$set": bson.M{
			"status":          models.StatusAfterResponse(message.Status, input.Internal),
			"last_replied_at": now,
			"updated_at":      now,
		},
	}
	err = config.MessageCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error adding response", "error": err.Error()})
		return
	}

	if !input.Internal {
		staffName := ""
		if staffID := currentUserID(c); staffID != nil {
			var staff models.User
			if err := config.UserCollection.FindOne(ctx, bson.M{"_id": staffID}).Decode(&staff); err == nil {
				staffName = staff.Name
			}
		}
		if err := utils.SendMessageResponse(message, input.Response, staffName); err != nil {
			log.Printf("message response email failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Response added successfully",
		"data":    gin.H{"message": message},
	})
}

func AssignMessage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message ID"})
		return
	}

	var input struct {
		StaffID string `json:"staffId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.StaffID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Staff ID is required"})
		return
	}
	staffID, err := primitive.ObjectIDFromHex(input.StaffID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid staff ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var staff models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": staffID}).Decode(&staff)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Staff member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error assigning message", "error": err.Error()})
		return
	}

	var message models.Message
	err = config.MessageCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"assigned_to": staffID, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&message)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error assigning message", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Message assigned to %s", staff.Name),
		"data":    gin.H{"message": message},
	})
}

func loadMessagesInRange(ctx context.Context, start, end time.Time) ([]models.Message, error) {
	cursor, err := config.MessageCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// GetMessageStats reports message volumes for a period, broken down by
// type, status, priority and day.
func GetMessageStats(c *gin.Context) {
	now := time.Now()
	start, _ := utils.DayRange(now)
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	messages, err := loadMessagesInRange(ctx, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching message statistics", "error": err.Error()})
		return
	}

	unreadCount := 0
	byType := map[string]int{}
	byStatus := map[string]int{}
	byPriority := map[string]int{}
	byDay := map[string]int{}
	for _, m := range messages {
		if m.Status == "new" {
			unreadCount++
		}
		byType[m.Type]++
		byStatus[m.Status]++
		byPriority[m.Priority]++
		byDay[m.CreatedAt.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	dailyMessages := make([]gin.H, 0, len(days))
	for _, day := range days {
		dailyMessages = append(dailyMessages, gin.H{"date": day, "messages": byDay[day]})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"period":             gin.H{"start": start, "end": end},
			"totalMessages":      len(messages),
			"unreadCount":        unreadCount,
			"messagesByType":     byType,
			"messagesByStatus":   byStatus,
			"messagesByPriority": byPriority,
			"dailyMessages":      dailyMessages,
		},
	})
}

func GetTodaysMessages(c *gin.Context) {
	start, end := utils.DayRange(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.MessageCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lte": end},
	}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's messages", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching today's messages", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(messages),
		"data":    gin.H{"messages": messages},
	})
}

func GetUnreadCount(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.MessageCollection.CountDocuments(ctx, bson.M{"status": "new"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching unread count", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"unreadCount": count}})
}

// SendDailyMessagesReport emails today's message statistics to every
// verified admin.
func SendDailyMessagesReport(c *gin.Context) {
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
	messages, err := loadMessagesInRange(ctx, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending daily report", "error": err.Error()})
		return
	}

	unreadCount := int64(0)
	byType := map[string]int{}
	byStatus := map[string]int{}
	for _, m := range messages {
		if m.Status == "new" {
			unreadCount++
		}
		byType[m.Type]++
		byStatus[m.Status]++
	}

	report := utils.DailyMessagesReport{
		Date:             time.Now().Format("Mon Jan 2 2006"),
		TotalMessages:    len(messages),
		MessagesByType:   byType,
		MessagesByStatus: byStatus,
		UnreadCount:      unreadCount,
	}

	for _, admin := range admins {
		if err := utils.SendDailyMessagesReport(admin, report); err != nil {
			log.Printf("daily messages report failed for %s: %v", admin.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Daily messages report sent to all admins",
		"data": gin.H{
			"recipients": len(admins),
			"report":     report,
		},
	})
}

func DeleteMessage(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid message ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.MessageCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting message", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message deleted successfully", "data": nil})
}
