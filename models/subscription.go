package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscription struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	IsActive         bool               `bson:"is_active" json:"isActive"`
	SubscriptionDate time.Time          `bson:"subscription_date" json:"subscriptionDate"`
	UnsubscribedAt   *time.Time         `bson:"unsubscribed_at,omitempty" json:"unsubscribedAt,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updatedAt"`
}
