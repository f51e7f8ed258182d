package controllers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
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

func newVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Register creates an unverified account and mails a verification link.
func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Passwords do not match"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User already exists with this email"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	token, err := newVerificationToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	now := time.Now()
	expires := now.Add(24 * time.Hour)
	user := models.User{
		ID:                       primitive.NewObjectID(),
		Name:                     input.Name,
		Email:                    input.Email,
		Password:                 hashedPassword,
		Status:                   "user",
		EmailVerificationToken:   token,
		EmailVerificationExpires: &expires,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	if err := utils.SendVerificationEmail(user, token); err != nil {
		log.Printf("verification email failed for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration successful. Please check your email to verify your account.",
		"data": gin.H{
			"user": gin.H{
				"id":     user.ID,
				"name":   user.Name,
				"email":  user.Email,
				"status": user.Status,
			},
		},
	})
}

// Login checks credentials, bumps the login counters and issues a JWT.
func Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Please provide email and password"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil || utils.VerifyPassword(user.Password, input.Password) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Incorrect email or password"})
		return
	}

	now := time.Now()
	config.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set": bson.M{"last_login": now, "updated_at": now},
		"$inc": bson.M{"login_count": 1},
	})
	user.LastLogin = &now
	user.LoginCount++

	token, err := utils.GenerateToken(user.ID.Hex(), user.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	c.SetCookie("jwt", token, int(24*time.Hour/time.Second), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": user},
	})
}

// VerifyEmail confirms the account behind an unexpired token and sends
// the welcome mail.
func VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{
		"email_verification_token":   token,
		"email_verification_expires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid or expired verification token"})
		return
	}

	_, err = config.UserCollection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"email_verified": true, "updated_at": time.Now()},
		"$unset": bson.M{"email_verification_token": "", "email_verification_expires": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	if err := utils.SendWelcomeEmail(user); err != nil {
		log.Printf("welcome email failed for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Email verified successfully. You can now login.",
	})
}

func GetMe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := config.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
}

// UpdateMe lets the caller change their own name and email only.
func UpdateMe(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Email != "" {
		update["email"] = input.Email
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating profile", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
}

func GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching users", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching users", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(users),
		"data":    gin.H{"users": users},
	})
}

func GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
}

// CreateUser is the admin path: the account comes out verified.
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Name, email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating user", "error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "User already exists with this email"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating user", "error": err.Error()})
		return
	}

	status := input.Status
	if status == "" {
		status = "user"
	}

	now := time.Now()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Email:         input.Email,
		Password:      hashedPassword,
		Status:        status,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"user": user}})
}

func UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid user ID"})
		return
	}

	var input struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Email != "" {
		update["email"] = input.Email
	}
	if input.Status != "" {
		update["status"] = input.Status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating user", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user}})
}

func DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := config.UserCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting user", "error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{"status": "success", "data": nil})
}

// GetUserStats reports account totals and current week activity.
func GetUserStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	startOfWeek, _ := utils.WeekRange(time.Now())

	totalUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user statistics", "error": err.Error()})
		return
	}
	newUsersThisWeek, err := config.UserCollection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": startOfWeek}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user statistics", "error": err.Error()})
		return
	}
	activeUsersThisWeek, err := config.UserCollection.CountDocuments(ctx, bson.M{"last_login": bson.M{"$gte": startOfWeek}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user statistics", "error": err.Error()})
		return
	}

	cursor, err := config.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user statistics", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching user statistics", "error": err.Error()})
		return
	}

	byStatus := map[string]int{}
	for _, user := range users {
		byStatus[user.Status]++
	}
	usersByStatus := []gin.H{}
	for status, count := range byStatus {
		usersByStatus = append(usersByStatus, gin.H{"_id": status, "count": count})
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"totalUsers":          totalUsers,
			"newUsersThisWeek":    newUsersThisWeek,
			"activeUsersThisWeek": activeUsersThisWeek,
			"usersByStatus":       usersByStatus,
		},
	})
}

// GetMonthlySignups returns registration counts per month for one year.
func GetMonthlySignups(c *gin.Context) {
	year := time.Now().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		if parsed, err := strconv.Atoi(yearStr); err == nil {
			year = parsed
		}
	}
	start, end := utils.YearRange(year, time.Local)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := config.UserCollection.Find(ctx, bson.M{
		"created_at": bson.M{"$gte": start, "$lte": end},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching monthly signups", "error": err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching monthly signups", "error": err.Error()})
		return
	}

	byMonth := map[int]int{}
	for _, user := range users {
		byMonth[int(user.CreatedAt.Month())]++
	}
	months := make([]int, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Ints(months)

	signups := make([]gin.H, 0, len(months))
	for _, month := range months {
		signups = append(signups, gin.H{"month": month, "count": byMonth[month]})
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": signups})
}

// SendWeeklyStatsReportNow mails the current week's stats to every
// verified admin on demand.
func SendWeeklyStatsReportNow(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startOfWeek, endOfWeek := utils.WeekRange(time.Now())

	admins, err := verifiedAdmins(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending weekly report", "error": err.Error()})
		return
	}
	if len(admins) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "No admin users found"})
		return
	}

	stats, err := utils.GenerateWeeklyStats(ctx, startOfWeek, endOfWeek)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error sending weekly report", "error": err.Error()})
		return
	}

	for _, admin := range admins {
		if err := utils.SendWeeklyStatsEmail(admin, *stats); err != nil {
			log.Printf("weekly stats email failed for %s: %v", admin.Email, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Weekly statistics report sent to all admins",
		"data": gin.H{
			"recipients": len(admins),
			"period": gin.H{
				"start": startOfWeek,
				"end":   endOfWeek,
			},
		},
	})
}

// MarkManagerAttendance records a manager check-in by bumping the login
// counters.
func MarkManagerAttendance(c *gin.Context) {
	status, _ := c.Get("userStatus")
	if status != "manager" {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Only managers can mark attendance"})
		return
	}

	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	var user models.User
	err := config.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$set": bson.M{"last_login": now, "updated_at": now},
			"$inc": bson.M{"login_count": 1},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error marking attendance", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Attendance marked successfully",
		"data": gin.H{
			"user": gin.H{
				"id":         user.ID,
				"name":       user.Name,
				"email":      user.Email,
				"status":     user.Status,
				"lastLogin":  user.LastLogin,
				"loginCount": user.LoginCount,
			},
		},
	})
}

// GetManagerDashboard returns the reduced stats managers may see.
func GetManagerDashboard(c *gin.Context) {
	userID := currentUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totalUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{"status": "user"})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard data", "error": err.Error()})
		return
	}
	activeUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{
		"status":     "user",
		"last_login": bson.M{"$gte": time.Now().AddDate(0, 0, -7)},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard data", "error": err.Error()})
		return
	}

	var manager models.User
	if err := config.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&manager); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching dashboard data", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"totalUsers":  totalUsers,
			"activeUsers": activeUsers,
			"managerInfo": gin.H{
				"name":       manager.Name,
				"lastLogin":  manager.LastLogin,
				"loginCount": manager.LoginCount,
			},
		},
	})
}
