package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                     string             `bson:"name" json:"name"`
	Email                    string             `bson:"email" json:"email"`
	Password                 string             `bson:"password" json:"-"`
	Status                   string             `bson:"status" json:"status"` // "user", "manager", "admin"
	EmailVerified            bool               `bson:"email_verified" json:"emailVerified"`
	EmailVerificationToken   string             `bson:"email_verification_token,omitempty" json:"-"`
	EmailVerificationExpires *time.Time         `bson:"email_verification_expires,omitempty" json:"-"`
	LastLogin                *time.Time         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	LoginCount               int                `bson:"login_count" json:"loginCount"`
	CreatedAt                time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt                time.Time          `bson:"updated_at" json:"updatedAt"`
}

type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ManagerAttendance struct {
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	LoginCount     int        `json:"loginCount"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	AttendanceRate int        `json:"attendanceRate"`
}

type DailyLogins struct {
	Day         string `json:"day"`
	Logins      int    `json:"logins"`
	ActiveUsers int    `json:"activeUsers"`
}

type WeeklyStats struct {
	StartDate           time.Time           `json:"startDate"`
	EndDate             time.Time           `json:"endDate"`
	TotalUsers          int64               `json:"totalUsers"`
	NewUsersThisWeek    int64               `json:"newUsersThisWeek"`
	ActiveUsersThisWeek int64               `json:"activeUsersThisWeek"`
	TotalManagers       int64               `json:"totalManagers"`
	ManagerAttendance   []ManagerAttendance `json:"managerAttendance"`
	UserLogins          []DailyLogins       `json:"userLogins"`
}

// AttendanceRate scores weekly logins against a 5 working day week,
// capped at 100.
func AttendanceRate(loginCount int) int {
	rate := int(float64(loginCount) / 5 * 100)
	if rate > 100 {
		return 100
	}
	return rate
}
