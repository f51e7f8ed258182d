package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlotCapacity is the maximum number of accepted bookings per date+time slot.
const SlotCapacity = 10

// TimeSlots are the bookable hours of the restaurant.
var TimeSlots = []string{
	"10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
	"6:00 PM", "7:00 PM", "8:00 PM",
}

type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Service         string             `bson:"service" json:"service" binding:"required"`
	Date            time.Time          `bson:"date" json:"date"`
	Time            string             `bson:"time" json:"time" binding:"required"`
	Guests          int                `bson:"guests" json:"guests" binding:"required"`
	Name            string             `bson:"name" json:"name" binding:"required"`
	Email           string             `bson:"email" json:"email" binding:"required"`
	Phone           string             `bson:"phone" json:"phone" binding:"required"`
	SpecialRequests string             `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`
	Status          string             `bson:"status" json:"status"` // "pending", "confirmed", "cancelled"
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

type BookingInput struct {
	Service         string `json:"service"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Guests          int    `json:"guests"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests"`
}

func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

type SlotDetail struct {
	Time      string `json:"time"`
	Booked    int    `json:"booked"`
	Remaining int    `json:"remaining"`
	Status    string `json:"status"` // "available", "limited", "fully-booked"
}

// ClassifySlots turns per-slot booking counts into slot details for every
// fixed time label. Unknown labels in counts are ignored.
func ClassifySlots(counts map[string]int) []SlotDetail {
	details := make([]SlotDetail, 0, len(TimeSlots))
	for _, slot := range TimeSlots {
		booked := counts[slot]
		status := "available"
		if booked >= SlotCapacity {
			status = "fully-booked"
		} else if booked > 0 {
			status = "limited"
		}
		details = append(details, SlotDetail{
			Time:      slot,
			Booked:    booked,
			Remaining: SlotCapacity - booked,
			Status:    status,
		})
	}
	return details
}

// ServicePrice maps a booking service to its projected revenue.
func ServicePrice(service string) float64 {
	switch service {
	case "premium":
		return 200
	case "standard":
		return 100
	case "basic":
		return 50
	default:
		return 100
	}
}
