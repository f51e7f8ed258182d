package controllers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"backend/config"
	"backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Subscribe signs an email up for the newsletter, reactivating a
// previously cancelled subscription instead of duplicating it.
func Subscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !models.IsValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide a valid email"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.Subscription
	err := config.SubscriptionCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		if existing.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already subscribed"})
			return
		}
		err = config.SubscriptionCollection.FindOneAndUpdate(ctx,
			bson.M{"_id": existing.ID},
			bson.M{
				"$set":   bson.M{"is_active": true, "updated_at": time.Now()},
				"$unset": bson.M{"unsubscribed_at": ""},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&existing)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error reactivating subscription", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Subscription reactivated successfully",
			"data":    existing,
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error subscribing", "error": err.Error()})
		return
	}

	now := time.Now()
	subscription := models.Subscription{
		ID:               primitive.NewObjectID(),
		Email:            email,
		IsActive:         true,
		SubscriptionDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := config.SubscriptionCollection.InsertOne(ctx, subscription); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error subscribing", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Subscribed successfully",
		"data":    subscription,
	})
}

func Unsubscribe(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var subscription models.Subscription
	err := config.SubscriptionCollection.FindOne(ctx, bson.M{"email": email}).Decode(&subscription)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Subscription not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error unsubscribing", "error": err.Error()})
		return
	}
	if !subscription.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already unsubscribed"})
		return
	}

	now := time.Now()
	_, err = config.SubscriptionCollection.UpdateOne(ctx, bson.M{"_id": subscription.ID}, bson.M{
		"$set": bson.M{"is_active": false, "unsubscribed_at": now, "updated_at": now},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error unsubscribing", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unsubscribed successfully"})
}

// UpdateSubscriptionPreferences touches an active subscription. The
// write is a no-op beyond bumping updated_at until more preference
// fields exist, mirroring the public endpoint's contract.
func UpdateSubscriptionPreferences(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var subscription models.Subscription
	err := config.SubscriptionCollection.FindOne(ctx, bson.M{"email": email}).Decode(&subscription)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Subscription not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating preferences", "error": err.Error()})
		return
	}
	if !subscription.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot update preferences for inactive subscription"})
		return
	}

	err = config.SubscriptionCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": subscription.ID},
		bson.M{"$set": bson.M{"updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&subscription)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating preferences", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Preferences updated successfully",
		"data":    subscription,
	})
}

func GetSubscriptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	filter := bson.M{}
	if active := c.Query("active"); active != "" {
		filter["is_active"] = active == "true"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.SubscriptionCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching subscriptions", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.SubscriptionCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching subscriptions", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	subscriptions := []models.Subscription{}
	if err := cursor.All(ctx, &subscriptions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching subscriptions", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    subscriptions,
		"pagination": gin.H{
			"current":      page,
			"total":        int(math.Ceil(float64(total) / float64(limit))),
			"count":        len(subscriptions),
			"totalRecords": total,
		},
	})
}

func GetSubscription(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var subscription models.Subscription
	err := config.SubscriptionCollection.FindOne(ctx, bson.M{"email": email}).Decode(&subscription)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Subscription not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching subscription", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": subscription})
}

func DeleteSubscription(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid subscription ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.SubscriptionCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error deleting subscription", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Subscription not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Subscription deleted successfully"})
}
