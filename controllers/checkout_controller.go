package controllers

import (
	"errors"
	"net/http"

	"github.com/emmanuel7l7/chicken-farm/middleware"
	"github.com/emmanuel7l7/chicken-farm/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// Submit runs one checkout attempt over the caller's cart. Failure classes
// map to distinct responses so the client can tell a fixable form error
// from a decline, and a decline from the contact-support case.
func (cc *CheckoutController) Submit(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := cc.Checkout.Checkout(c, userID, req)
	if err != nil {
		var validationErr *services.ValidationError
		var declinedErr *services.DeclinedError
		var persistenceErr *services.PersistenceError

		switch {
		case errors.Is(err, services.ErrCheckoutInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Message,
				"field": validationErr.Field,
			})

		case errors.As(err, &declinedErr):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":     declinedErr.Reason,
				"timed_out": declinedErr.TimedOut,
			})

		case errors.As(err, &persistenceErr):
			// Payment went through but no order was recorded. Do not let
			// the client treat this like a decline and retry.
			c.JSON(http.StatusBadGateway, gin.H{
				"error":           "Your payment was processed but the order could not be recorded. Please contact support.",
				"transaction_ref": persistenceErr.TransactionRef,
			})

		default:
			zap.L().Error("checkout failed", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
