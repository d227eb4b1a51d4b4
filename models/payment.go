package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is the audit row recorded alongside an order. The order itself
// carries the authoritative payment status; this table keeps the gateway's
// transaction reference for out-of-band reconciliation.
type Payment struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"order_id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Amount         int64          `gorm:"not null" json:"amount"`
	Currency       string         `gorm:"type:varchar(10);not null" json:"currency"`
	Method         string         `gorm:"type:varchar(32);not null" json:"method"`
	Status         string         `gorm:"type:varchar(20);not null" json:"status"`
	TransactionRef string         `gorm:"index" json:"transaction_ref"`
	Note           string         `json:"note"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
