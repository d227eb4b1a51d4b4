package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment statuses. Cash on delivery orders start as awaiting_delivery:
// the order is secured but money changes hands at the doorstep.
const (
	PaymentStatusPending          = "pending"
	PaymentStatusPaid             = "paid"
	PaymentStatusAwaitingDelivery = "awaiting_delivery"
	PaymentStatusFailed           = "failed"
)

type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	BuyerName       string         `gorm:"not null" json:"buyer_name"`
	BuyerEmail      string         `json:"buyer_email"`
	DeliveryAddress string         `gorm:"not null" json:"delivery_address"`
	Phone           string         `gorm:"not null" json:"phone"`
	Notes           string         `json:"notes"`
	Amount          int64          `gorm:"not null" json:"amount"` // snapshotted at checkout, TZS
	PaymentMethod   string         `gorm:"type:varchar(32);not null" json:"payment_method"`
	PaymentStatus   string         `gorm:"type:varchar(32);not null" json:"payment_status"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	OrderItems      []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a price snapshot: unit price and line total are fixed at
// checkout time and never follow later catalog changes.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string    `gorm:"not null" json:"product_id"`
	ProductName string    `gorm:"not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"unit_price"`
	LineTotal   int64     `gorm:"not null" json:"line_total"`
}
