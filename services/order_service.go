package services

import (
	"context"
	"errors"

	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

var validPaymentStatuses = map[string]bool{
	models.PaymentStatusPending:          true,
	models.PaymentStatusPaid:             true,
	models.PaymentStatusAwaitingDelivery: true,
	models.PaymentStatusFailed:           true,
}

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetUserOrders retrieves paginated orders for a specific user
func (s *OrderService) GetUserOrders(ctx context.Context, userID string, page, limit int) (*OrderResponse, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userUUID, page, limit)
	if err != nil {
		zap.L().Error("failed to fetch orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta:   buildMeta(page, limit, total),
	}, nil
}

// GetAllOrders retrieves paginated orders for all users (admin only)
func (s *OrderService) GetAllOrders(ctx context.Context, page, limit int) (*OrderResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		zap.L().Error("failed to fetch all orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}

	return &OrderResponse{
		Orders: orders,
		Meta:   buildMeta(page, limit, total),
	}, nil
}

// GetOrderByID retrieves a specific order for a user
func (s *OrderService) GetOrderByID(ctx context.Context, userID string, orderID uuid.UUID) (*models.Order, *ServiceError) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid user ID format"}
	}

	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		zap.L().Error("failed to fetch order",
			zap.String("order_id", orderID.String()),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}

	return order, nil
}

// UpdateStatus is the administrative path for order state transitions; it
// never runs as part of a checkout.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status, paymentStatus string) *ServiceError {
	if status == "" && paymentStatus == "" {
		return &ServiceError{StatusCode: 400, Message: "No status update provided"}
	}
	if status != "" && !validOrderStatuses[status] {
		return &ServiceError{StatusCode: 400, Message: "Invalid order status"}
	}
	if paymentStatus != "" && !validPaymentStatuses[paymentStatus] {
		return &ServiceError{StatusCode: 400, Message: "Invalid payment status"}
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status, paymentStatus); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		zap.L().Error("failed to update order status",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return nil
}

func buildMeta(page, limit int, total int64) MetaData {
	return MetaData{
		Page:        page,
		Limit:       limit,
		TotalOrders: total,
		TotalPages:  calculateTotalPages(total, limit),
		HasMore:     total > int64(page*limit),
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
