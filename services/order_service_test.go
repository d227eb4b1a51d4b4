package services

import (
	"context"
	"testing"

	"github.com/emmanuel7l7/chicken-farm/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrders(repo *memOrderRepo, userID uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		repo.orders = append(repo.orders, &models.Order{
			ID:            uuid.New(),
			OrderNumber:   "ORD-TEST",
			UserID:        userID,
			Amount:        10000,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
		})
	}
}

func TestGetUserOrders(t *testing.T) {
	repo := &memOrderRepo{}
	userID := uuid.New()
	seedOrders(repo, userID, 3)
	seedOrders(repo, uuid.New(), 2)

	svc := NewOrderService(repo)

	resp, svcErr := svc.GetUserOrders(context.Background(), userID.String(), 1, 10)
	require.Nil(t, svcErr)
	assert.Len(t, resp.Orders, 3, "only the user's own orders come back")
	assert.Equal(t, int64(3), resp.Meta.TotalOrders)

	_, svcErr = svc.GetUserOrders(context.Background(), "not-a-uuid", 1, 10)
	require.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestGetOrderByIDScopedToUser(t *testing.T) {
	repo := &memOrderRepo{}
	owner := uuid.New()
	seedOrders(repo, owner, 1)
	orderID := repo.orders[0].ID

	svc := NewOrderService(repo)

	order, svcErr := svc.GetOrderByID(context.Background(), owner.String(), orderID)
	require.Nil(t, svcErr)
	assert.Equal(t, orderID, order.ID)

	// Another user asking for the same order gets not-found, not forbidden,
	// so order IDs leak nothing.
	_, svcErr = svc.GetOrderByID(context.Background(), uuid.New().String(), orderID)
	require.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestUpdateStatus(t *testing.T) {
	repo := &memOrderRepo{}
	userID := uuid.New()
	seedOrders(repo, userID, 1)
	orderID := repo.orders[0].ID

	svc := NewOrderService(repo)

	svcErr := svc.UpdateStatus(context.Background(), orderID, models.OrderStatusDelivered, models.PaymentStatusPaid)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusDelivered, repo.orders[0].Status)
	assert.Equal(t, models.PaymentStatusPaid, repo.orders[0].PaymentStatus)

	// Partial updates leave the other field alone.
	svcErr = svc.UpdateStatus(context.Background(), orderID, models.OrderStatusCancelled, "")
	require.Nil(t, svcErr)
	assert.Equal(t, models.PaymentStatusPaid, repo.orders[0].PaymentStatus)
}

func TestUpdateStatusValidation(t *testing.T) {
	repo := &memOrderRepo{}
	svc := NewOrderService(repo)

	tests := []struct {
		name          string
		status        string
		paymentStatus string
		wantCode      int
	}{
		{"nothing to update", "", "", 400},
		{"unknown order status", "shipped_to_mars", "", 400},
		{"unknown payment status", "", "maybe", 400},
		{"order not found", models.OrderStatusDelivered, "", 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcErr := svc.UpdateStatus(context.Background(), uuid.New(), tt.status, tt.paymentStatus)
			require.NotNil(t, svcErr)
			assert.Equal(t, tt.wantCode, svcErr.StatusCode)
		})
	}
}

func TestPaginationMeta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int64
		wantMore  bool
	}{
		{"exact fit", 1, 10, 10, 1, false},
		{"partial last page", 1, 10, 25, 3, true},
		{"on last page", 3, 10, 25, 3, false},
		{"empty", 1, 10, 0, 0, false},
		{"zero limit", 1, 0, 25, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := buildMeta(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
			assert.Equal(t, tt.wantMore, meta.HasMore)
			assert.Equal(t, tt.total, meta.TotalOrders)
		})
	}
}
