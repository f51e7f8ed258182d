package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TestimonialImage struct {
	PublicID string `bson:"public_id,omitempty" json:"public_id,omitempty"`
	URL      string `bson:"url,omitempty" json:"url,omitempty"`
}

type Testimonial struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string              `bson:"name" json:"name"`
	Role      string              `bson:"role" json:"role"`
	Content   string              `bson:"content" json:"content"`
	Rating    int                 `bson:"rating" json:"rating"`
	Email     string              `bson:"email" json:"email"`
	Image     TestimonialImage    `bson:"image,omitempty" json:"image,omitempty"`
	Status    string              `bson:"status" json:"status"` // "pending", "approved", "rejected"
	Featured  bool                `bson:"featured" json:"featured"`
	CreatedBy *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updatedAt"`
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
