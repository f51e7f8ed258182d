package models

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderDetails struct {
	OrderID       string    `bson:"order_id" json:"orderId"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
	TotalAmount   float64   `bson:"total_amount" json:"totalAmount"`
	Status        string    `bson:"status" json:"status"` // "pending", "confirmed", "preparing", "ready", "completed", "cancelled"
	PaymentMethod string    `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"` // "pending", "completed", "failed", "refunded"
}

type CustomerInfo struct {
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone" json:"phone"`
	Location string `bson:"location" json:"location"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Notes    string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type CartItem struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	TotalPrice  float64 `bson:"total_price" json:"totalPrice"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Type        string  `bson:"type" json:"type"` // "food", "alcohol", "soft_drink", "wine", "cocktail", "dessert"
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
}

type OrderSummary struct {
	Subtotal      float64 `bson:"subtotal" json:"subtotal"`
	Tax           float64 `bson:"tax" json:"tax"`
	ServiceCharge float64 `bson:"service_charge" json:"serviceCharge"`
	DeliveryFee   float64 `bson:"delivery_fee" json:"deliveryFee"`
	Discount      float64 `bson:"discount" json:"discount"`
	Total         float64 `bson:"total" json:"total"`
	ItemCount     int     `bson:"item_count" json:"itemCount"`
}

type DeliveryInfo struct {
	DeliveryTime         *time.Time `bson:"delivery_time,omitempty" json:"deliveryTime,omitempty"`
	EstimatedDelivery    *time.Time `bson:"estimated_delivery,omitempty" json:"estimatedDelivery,omitempty"`
	DeliveryAddress      string     `bson:"delivery_address,omitempty" json:"deliveryAddress,omitempty"`
	DeliveryInstructions string     `bson:"delivery_instructions,omitempty" json:"deliveryInstructions,omitempty"`
}

type Order struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	OrderDetails OrderDetails        `bson:"order_details" json:"orderDetails"`
	CustomerInfo CustomerInfo        `bson:"customer_info" json:"customerInfo"`
	CartItems    []CartItem          `bson:"cart_items" json:"cartItems"`
	Summary      OrderSummary        `bson:"summary" json:"summary"`
	DeliveryInfo DeliveryInfo        `bson:"delivery_info,omitempty" json:"deliveryInfo,omitempty"`
	CreatedBy    *primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	AssignedTo   *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// GenerateOrderID builds a reference like ORD-1717000000000-k3j9x2m1p.
func GenerateOrderID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = chars[rand.Intn(len(chars))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
