package models

import "time"

// OrderCreatedEvent is published after an order has been committed.
type OrderCreatedEvent struct {
	Event         string    `json:"event"` // "order.created"
	OrderID       string    `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	UserID        string    `json:"user_id"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	Timestamp     time.Time `json:"timestamp"`
}
