package models

import (
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a shop order. Only its payment fields matter to the booking core:
// the payment reconciler targets orders and appointments alike.
type Order struct {
	gorm.Model
	UserID           uint          `json:"user_id"`
	User             User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalAmount      float64       `json:"total_amount"`
	Status           OrderStatus   `json:"status" gorm:"type:varchar(32);default:'placed'"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(32);default:'pending'"`
	PaymentReference *string       `json:"payment_reference,omitempty"`
}
