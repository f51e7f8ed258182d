package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"backend/config"
	"backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GenerateWeeklyStats collects the user activity numbers for one week:
// totals, manager attendance and a zero-filled per-day login series.
func GenerateWeeklyStats(ctx context.Context, startOfWeek, endOfWeek time.Time) (*models.WeeklyStats, error) {
	totalUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	newUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{
		"created_at": bson.M{"$gte": startOfWeek, "$lte": endOfWeek},
	})
	if err != nil {
		return nil, fmt.Errorf("counting new users: %w", err)
	}

	activeUsers, err := config.UserCollection.CountDocuments(ctx, bson.M{
		"last_login": bson.M{"$gte": startOfWeek, "$lte": endOfWeek},
	})
	if err != nil {
		return nil, fmt.Errorf("counting active users: %w", err)
	}

	totalManagers, err := config.UserCollection.CountDocuments(ctx, bson.M{"status": "manager"})
	if err != nil {
		return nil, fmt.Errorf("counting managers: %w", err)
	}

	cursor, err := config.UserCollection.Find(ctx, bson.M{"status": "manager"})
	if err != nil {
		return nil, fmt.Errorf("loading managers: %w", err)
	}
	var managers []models.User
	if err := cursor.All(ctx, &managers); err != nil {
		return nil, fmt.Errorf("loading managers: %w", err)
	}

	attendance := make([]models.ManagerAttendance, 0, len(managers))
	for _, manager := range managers {
		attendance = append(attendance, models.ManagerAttendance{
			Name:           manager.Name,
			Email:          manager.Email,
			LoginCount:     manager.LoginCount,
			LastLogin:      manager.LastLogin,
			AttendanceRate: models.AttendanceRate(manager.LoginCount),
		})
	}

	loginCursor, err := config.UserCollection.Find(ctx, bson.M{
		"last_login": bson.M{"$gte": startOfWeek, "$lte": endOfWeek},
	})
	if err != nil {
		return nil, fmt.Errorf("loading logins: %w", err)
	}
	var activeThisWeek []models.User
	if err := loginCursor.All(ctx, &activeThisWeek); err != nil {
		return nil, fmt.Errorf("loading logins: %w", err)
	}

	loginsByDay := map[string]int{}
	for _, user := range activeThisWeek {
		if user.LastLogin == nil {
			continue
		}
		loginsByDay[user.LastLogin.Format("2006-01-02")]++
	}

	userLogins := make([]models.DailyLogins, 0, 7)
	for i := 0; i < 7; i++ {
		day := startOfWeek.AddDate(0, 0, i).Format("2006-01-02")
		userLogins = append(userLogins, models.DailyLogins{
			Day:         day,
			Logins:      loginsByDay[day],
			ActiveUsers: loginsByDay[day],
		})
	}

	return &models.WeeklyStats{
		StartDate:           startOfWeek,
		EndDate:             endOfWeek,
		TotalUsers:          totalUsers,
		NewUsersThisWeek:    newUsers,
		ActiveUsersThisWeek: activeUsers,
		TotalManagers:       totalManagers,
		ManagerAttendance:   attendance,
		UserLogins:          userLogins,
	}, nil
}

// SendWeeklyStatsReport is the Monday morning job: it builds the stats
// for the previous week and mails them to every verified admin.
func SendWeeklyStatsReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	start, end := LastWeekRange(time.Now())

	stats, err := GenerateWeeklyStats(ctx, start, end)
	if err != nil {
		log.Printf("weekly stats generation failed: %v", err)
		return
	}

	cursor, err := config.UserCollection.Find(ctx, bson.M{"status": "admin", "email_verified": true})
	if err != nil {
		log.Printf("weekly stats admin lookup failed: %v", err)
		return
	}
	var admins []models.User
	if err := cursor.All(ctx, &admins); err != nil {
		log.Printf("weekly stats admin lookup failed: %v", err)
		return
	}
	if len(admins) == 0 {
		log.Println("weekly stats report skipped: no verified admins")
		return
	}

	for _, admin := range admins {
		if err := SendWeeklyStatsEmail(admin, *stats); err != nil {
			log.Printf("weekly stats email failed for %s: %v", admin.Email, err)
		}
	}
	log.Printf("weekly stats report sent to %d admins", len(admins))
}
