package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageResponse struct {
	Message   string              `bson:"message" json:"message"`
	RepliedBy *primitive.ObjectID `bson:"replied_by,omitempty" json:"repliedBy,omitempty"`
	RepliedAt time.Time           `bson:"replied_at" json:"repliedAt"`
	Internal  bool                `bson:"internal" json:"internal"`
}

type Message struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string              `bson:"name" json:"name"`
	Email         string              `bson:"email" json:"email"`
	Phone         string              `bson:"phone" json:"phone"`
	Message       string              `bson:"message" json:"message"`
	Date          *time.Time          `bson:"date,omitempty" json:"date,omitempty"`
	Time          string              `bson:"time,omitempty" json:"time,omitempty"`
	Guests        int                 `bson:"guests,omitempty" json:"guests,omitempty"`
	Type          string              `bson:"type" json:"type"` // "contact", "booking", "reservation", "inquiry", "complaint"
	Status        string              `bson:"status" json:"status"` // "new", "read", "replied", "closed", "archived"
	Priority      string              `bson:"priority" json:"priority"`
	Responses     []MessageResponse   `bson:"responses" json:"responses"`
	Category      string              `bson:"category" json:"category"`
	Tags          []string            `bson:"tags,omitempty" json:"tags,omitempty"`
	Source        string              `bson:"source" json:"source"`
	AssignedTo    *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	CreatedBy     *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updatedAt"`
	LastRepliedAt *time.Time          `bson:"last_replied_at,omitempty" json:"lastRepliedAt,omitempty"`
}

var urgentKeywords = []string{"urgent", "asap", "emergency", "immediately"}

// DerivePriority ranks a message: urgent wording always wins, booking
// and reservation types rank high, everything else stays medium.
func DerivePriority(msgType, body string) string {
	lower := strings.ToLower(body)
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			return "urgent"
		}
	}
	if msgType == "booking" || msgType == "reservation" {
		return "high"
	}
	return "medium"
}

// DeriveCategory infers a category from message content. Match order is
// fixed, so a message mentioning both booking and billing files under
// booking.
func DeriveCategory(body string) string {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "book"), strings.Contains(lower, "reserv"):
		return "booking"
	case strings.Contains(lower, "service"), strings.Contains(lower, "help"):
		return "service"
	case strings.Contains(lower, "product"), strings.Contains(lower, "menu"):
		return "product"
	case strings.Contains(lower, "bill"), strings.Contains(lower, "payment"), strings.Contains(lower, "price"):
		return "billing"
	case strings.Contains(lower, "technical"), strings.Contains(lower, "website"), strings.Contains(lower, "app"):
		return "technical"
	default:
		return "general"
	}
}

// StatusAfterResponse keeps the current status for internal notes;
// only a customer-facing reply moves the message to replied.
func StatusAfterResponse(current string, internal bool) string {
	if internal {
		return current
	}
	return "replied"
}

// DeriveType promotes a plain contact message carrying booking details.
func DeriveType(declared string, date *time.Time, timeSlot string, guests int) string {
	if declared == "" {
		declared = "contact"
	}
	if declared == "contact" && date != nil && timeSlot != "" && guests > 0 {
		return "booking"
	}
	return declared
}
