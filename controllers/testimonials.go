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

// CreateTestimonial accepts a review with either an uploaded photo or an
// image URL, stores it pending moderation and confirms by email.
func CreateTestimonial(c *gin.Context) {
	name := c.PostForm("name")
	role := c.PostForm("role")
	content := c.PostForm("content")
	email := c.PostForm("email")
	imageURL := c.PostForm("image")
	rating, _ := strconv.Atoi(c.PostForm("rating"))

	if name == "" || content == "" || email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name, content and email are required"})
		return
	}
	if !models.IsValidEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Please provide a valid email"})
		return
	}
	if rating < 1 || rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Rating must be between 1 and 5"})
		return
	}

	id := primitive.NewObjectID()
	var image models.TestimonialImage
	if file, err := c.FormFile("image"); err == nil {
		objectKey, url, err := SaveTestimonialPhotoToS3(file, id.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating testimonial", "error": err.Error()})
			return
		}
		image = models.TestimonialImage{PublicID: objectKey, URL: url}
	} else if imageURL != "" {
		image = models.TestimonialImage{URL: imageURL}
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Image is required"})
		return
	}

	now := time.Now()
	testimonial := models.Testimonial{
		ID:        id,
		Name:      name,
		Role:      role,
		Content:   content,
		Rating:    rating,
		Email:     email,
		Image:     image,
		Status:    "pending",
		CreatedBy: currentUserID(c),
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := config.TestimonialCollection.InsertOne(ctx, testimonial); err != nil {
		if image.PublicID != "" {
			DeleteTestimonialPhoto(image.PublicID)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating testimonial", "error": err.Error()})
		return
	}

	if err := utils.SendTestimonialConfirmation(testimonial); err != nil {
		log.Printf("testimonial confirmation email failed: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Testimonial created successfully. Confirmation email sent.",
		"data":    gin.H{"testimonial": testimonial},
	})
}

func GetAllTestimonials(c *gin.Context) {
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
		filter["status"] = status
	}
	if featured := c.Query("featured"); featured != "" {
		filter["featured"] = featured == "true"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := config.TestimonialCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonials", "error": err.Error()})
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64((page - 1) * limit))

	cursor, err := config.TestimonialCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonials", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonials", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(testimonials),
		"data": gin.H{
			"testimonials": testimonials,
			"pagination": gin.H{
				"current": page,
				"pages":   int(math.Ceil(float64(total) / float64(limit))),
				"total":   total,
			},
		},
	})
}

func listTestimonials(c *gin.Context, filter bson.M, failMessage string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := config.TestimonialCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": failMessage, "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	testimonials := []models.Testimonial{}
	if err := cursor.All(ctx, &testimonials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": failMessage, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(testimonials),
		"data":    gin.H{"testimonials": testimonials},
	})
}

func GetApprovedTestimonials(c *gin.Context) {
	listTestimonials(c, bson.M{"status": "approved"}, "Error fetching approved testimonials")
}

func GetFeaturedTestimonials(c *gin.Context) {
	listTestimonials(c, bson.M{"status": "approved", "featured": true}, "Error fetching featured testimonials")
}

func GetTestimonial(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid testimonial ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var testimonial models.Testimonial
	err = config.TestimonialCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Testimonial not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonial", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"testimonial": testimonial}})
}

func canModifyTestimonial(c *gin.Context, testimonial models.Testimonial) bool {
	status, _ := c.Get("userStatus")
	if status == "admin" {
		return true
	}
	userID := currentUserID(c)
	return userID != nil && testimonial.CreatedBy != nil && *testimonial.CreatedBy == *userID
}

// UpdateTestimonial edits a review. Only the author or an admin may
// touch it, and only an admin can flip the featured flag.
func UpdateTestimonial(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid testimonial ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var testimonial models.Testimonial
	err = config.TestimonialCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Testimonial not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating testimonial", "error": err.Error()})
		return
	}

	if !canModifyTestimonial(c, testimonial) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only update your own testimonials"})
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if name := c.PostForm("name"); name != "" {
		update["name"] = name
	}
	if role := c.PostForm("role"); role != "" {
		update["role"] = role
	}
	if content := c.PostForm("content"); content != "" {
		update["content"] = content
	}
	if ratingStr := c.PostForm("rating"); ratingStr != "" {
		if rating, err := strconv.Atoi(ratingStr); err == nil && rating >= 1 && rating <= 5 {
			update["rating"] = rating
		}
	}
	if email := c.PostForm("email"); email != "" {
		update["email"] = email
	}
	if featured := c.PostForm("featured"); featured != "" {
		if status, _ := c.Get("userStatus"); status == "admin" {
			update["featured"] = featured == "true"
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		if testimonial.Image.PublicID != "" {
			if err := DeleteTestimonialPhoto(testimonial.Image.PublicID); err != nil {
				log.Printf("old testimonial photo cleanup failed: %v", err)
			}
		}
		objectKey, url, err := SaveTestimonialPhotoToS3(file, id.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating testimonial", "error": err.Error()})
			return
		}
		update["image"] = models.TestimonialImage{PublicID: objectKey, URL: url}
	}

	err = config.TestimonialCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating testimonial", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"testimonial": testimonial}})
}

// UpdateTestimonialStatus is the moderation step; the author hears about
// the outcome by email.
func UpdateTestimonialStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid testimonial ID"})
		return
	}

	var input struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || (input.Status != "approved" && input.Status != "rejected" && input.Status != "pending") {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Status must be pending, approved or rejected"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var testimonial models.Testimonial
	err = config.TestimonialCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Testimonial not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating testimonial status", "error": err.Error()})
		return
	}

	switch input.Status {
	case "approved":
		if err := utils.SendTestimonialApproval(testimonial); err != nil {
			log.Printf("testimonial approval email failed: %v", err)
		}
	case "rejected":
		if err := utils.SendTestimonialRejection(testimonial, input.Reason); err != nil {
			log.Printf("testimonial rejection email failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Testimonial %s successfully", input.Status),
		"data":    gin.H{"testimonial": testimonial},
	})
}

func DeleteTestimonial(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid testimonial ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var testimonial models.Testimonial
	err = config.TestimonialCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Testimonial not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting testimonial", "error": err.Error()})
		return
	}

	if !canModifyTestimonial(c, testimonial) {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "You can only delete your own testimonials"})
		return
	}

	if testimonial.Image.PublicID != "" {
		if err := DeleteTestimonialPhoto(testimonial.Image.PublicID); err != nil {
			log.Printf("testimonial photo cleanup failed: %v", err)
		}
	}

	if _, err := config.TestimonialCollection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting testimonial", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Testimonial deleted successfully", "data": nil})
}

// GetTestimonialStats summarizes moderation state, ratings and monthly
// volume for the current year.
func GetTestimonialStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.TestimonialCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonial statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var testimonials []models.Testimonial
	if err := cursor.All(ctx, &testimonials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching testimonial statistics", "error": err.Error()})
		return
	}

	byStatus := map[string]int{}
	featured := 0
	ratingSum := 0
	currentYear := time.Now().Year()
	byMonth := map[int]int{}
	for _, t := range testimonials {
		byStatus[t.Status]++
		if t.Featured {
			featured++
		}
		ratingSum += t.Rating
		if t.CreatedAt.Year() == currentYear {
			byMonth[int(t.CreatedAt.Month())]++
		}
	}

	averageRating := 0.0
	if len(testimonials) > 0 {
		averageRating = float64(ratingSum) / float64(len(testimonials))
	}

	statusList := []gin.H{}
	for status, count := range byStatus {
		statusList = append(statusList, gin.H{"_id": status, "count": count})
	}

	months := make([]int, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Ints(months)
	monthly := make([]gin.H, 0, len(months))
	for _, month := range months {
		monthly = append(monthly, gin.H{"month": month, "count": byMonth[month]})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"totalTestimonials":    len(testimonials),
			"approvedTestimonials": byStatus["approved"],
			"pendingTestimonials":  byStatus["pending"],
			"rejectedTestimonials": byStatus["rejected"],
			"featuredTestimonials": featured,
			"averageRating":        averageRating,
			"testimonialsByStatus": statusList,
			"monthlyTestimonials":  monthly,
		},
	})
}

func GetMyTestimonials(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}
	listTestimonials(c, bson.M{"created_by": userID}, "Error fetching your testimonials")
}
