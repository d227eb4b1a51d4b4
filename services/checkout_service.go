package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/payments"
	"github.com/emmanuel7l7/chicken-farm/repository"
	"github.com/emmanuel7l7/chicken-farm/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutState tracks a single checkout attempt through the flow.
type CheckoutState string

const (
	StateIdle            CheckoutState = "IDLE"
	StateValidating      CheckoutState = "VALIDATING"
	StateAwaitingPayment CheckoutState = "AWAITING_PAYMENT"
	StateCommitting      CheckoutState = "COMMITTING"
	StateDone            CheckoutState = "DONE"
	StateFailed          CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}

type CheckoutRequest struct {
	Method          payments.Method `json:"payment_method"`
	DeliveryAddress string          `json:"delivery_address"`
	Phone           string          `json:"phone"`
	CardToken       string          `json:"card_token,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type CheckoutResult struct {
	State         CheckoutState    `json:"state"`
	OrderID       uuid.UUID        `json:"order_id"`
	OrderNumber   string           `json:"order_number"`
	Amount        int64            `json:"amount"`
	PaymentStatus string           `json:"payment_status"`
	Outcome       payments.Outcome `json:"payment_outcome"`
}

// OrderEventPublisher announces committed orders; failures are logged and
// never fail the checkout.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event models.OrderCreatedEvent) error
}

// CheckoutService sequences validation, payment and order commitment. The
// cart is cleared exactly once, only after the order has been recorded.
type CheckoutService struct {
	carts    *CartService
	products repository.ProductRepository
	users    repository.UserRepository
	orders   repository.OrderRepository
	payRepo  repository.PaymentRepository
	gateway  payments.Gateway
	events   OrderEventPublisher // optional
	sms      sender.SMSSender    // optional
	currency string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(
	carts *CartService,
	products repository.ProductRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	payRepo repository.PaymentRepository,
	gateway payments.Gateway,
	events OrderEventPublisher,
	sms sender.SMSSender,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		products: products,
		users:    users,
		orders:   orders,
		payRepo:  payRepo,
		gateway:  gateway,
		events:   events,
		sms:      sms,
		currency: currency,
		inFlight: make(map[string]struct{}),
	}
}

// begin marks the user's checkout as in flight. A second attempt while one
// is running would double-charge or double-order over the same cart.
func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, running := s.inFlight[userID]; running {
		return false
	}
	s.inFlight[userID] = struct{}{}
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, userID)
}

// Checkout drives one attempt end to end. On any failure before commit the
// cart still holds exactly what it held on entry.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResult, error) {
	if !s.begin(userID) {
		return nil, ErrCheckoutInProgress
	}
	defer s.end(userID)

	state := StateValidating
	log := zap.L().With(
		zap.String("user_id", userID),
		zap.String("payment_method", req.Method.String()),
	)

	user, items, total, err := s.validate(ctx, userID, req)
	if err != nil {
		log.Info("checkout rejected", zap.String("state", string(state)), zap.Error(err))
		return nil, err
	}

	state = StateAwaitingPayment
	orderID := uuid.New()
	orderNumber := newOrderNumber()
	log = log.With(zap.String("order_number", orderNumber), zap.Int64("amount", total))

	outcome := s.gateway.Charge(ctx, req.Method, payments.ChargeRequest{
		Amount:         total,
		Phone:          req.Phone,
		CardToken:      req.CardToken,
		OrderReference: orderNumber,
		Description:    fmt.Sprintf("Farm order %s", orderNumber),
	})

	if !outcome.Approved() {
		if outcome.TimedOut {
			log.Warn("payment timed out", zap.String("state", string(state)))
		} else {
			log.Info("payment declined", zap.String("state", string(state)), zap.String("reason", outcome.Reason))
		}
		return nil, &DeclinedError{Reason: outcome.Reason, TimedOut: outcome.TimedOut}
	}

	state = StateCommitting
	order := s.buildOrder(orderID, orderNumber, user, req, items, total, outcome)

	if err := s.orders.Create(ctx, order); err != nil {
		// The customer may have been charged or prompted on their phone;
		// the hazard has to surface, not be retried into a double charge.
		log.Error("order persistence failed after approved payment",
			zap.String("state", string(state)),
			zap.String("transaction_ref", outcome.TransactionRef),
			zap.Error(err),
		)
		return nil, &PersistenceError{TransactionRef: outcome.TransactionRef, Err: err}
	}

	s.recordPayment(ctx, order, user.ID, outcome)

	// Commit is done; the cart is consumed exactly once.
	if err := s.carts.Clear(ctx, userID); err != nil {
		log.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	state = StateDone
	log.Info("checkout completed",
		zap.String("state", string(state)),
		zap.String("order_id", order.ID.String()),
		zap.String("payment_status", order.PaymentStatus),
	)

	s.notify(ctx, order)

	return &CheckoutResult{
		State:         state,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Amount:        order.Amount,
		PaymentStatus: order.PaymentStatus,
		Outcome:       outcome,
	}, nil
}

// validate checks every precondition and snapshots the cart: line items and
// unit prices are fixed here, so later cart edits cannot shift the total.
func (s *CheckoutService) validate(ctx context.Context, userID string, req CheckoutRequest) (*models.User, []models.OrderItem, int64, error) {
	if userID == "" {
		return nil, nil, 0, &ValidationError{Message: "authentication required"}
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, 0, &ValidationError{Message: "authentication required"}
	}

	if !req.Method.Valid() {
		return nil, nil, 0, &ValidationError{Field: "payment_method", Message: "unsupported payment method"}
	}

	if req.Method.RequiresDeliveryContact() {
		if req.DeliveryAddress == "" {
			return nil, nil, 0, &ValidationError{Field: "delivery_address", Message: "delivery address is required"}
		}
		if req.Phone == "" {
			return nil, nil, 0, &ValidationError{Field: "phone", Message: "contact phone is required"}
		}
		if !payments.ValidatePhone(req.Phone) {
			return nil, nil, 0, &ValidationError{Field: "phone", Message: "invalid phone number"}
		}
	}
	if req.Method == payments.MethodCard && req.CardToken == "" {
		return nil, nil, 0, &ValidationError{Field: "card_token", Message: "payment token is required"}
	}

	user, err := s.users.FindByID(ctx, userUUID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, nil, 0, &ValidationError{Message: "authentication required"}
		}
		return nil, nil, 0, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	if cart.IsEmpty() {
		return nil, nil, 0, &ValidationError{Field: "cart", Message: "cart is empty"}
	}

	items, total, err := s.snapshot(ctx, cart)
	if err != nil {
		return nil, nil, 0, err
	}

	return user, items, total, nil
}

func (s *CheckoutService) snapshot(ctx context.Context, cart *models.Cart) ([]models.OrderItem, int64, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	var total int64
	for _, line := range cart.Items {
		product, ok := catalog[line.ProductID]
		if !ok || !product.IsActive {
			return nil, 0, &ValidationError{
				Field:   "cart",
				Message: fmt.Sprintf("product %s is no longer available", line.ProductID),
			}
		}

		lineTotal := product.Price * int64(line.Quantity)
		items = append(items, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		total += lineTotal
	}

	return items, total, nil
}

func (s *CheckoutService) buildOrder(
	orderID uuid.UUID,
	orderNumber string,
	user *models.User,
	req CheckoutRequest,
	items []models.OrderItem,
	total int64,
	outcome payments.Outcome,
) *models.Order {
	paymentStatus, orderStatus := statusesFor(req.Method, outcome)

	return &models.Order{
		ID:              orderID,
		OrderNumber:     orderNumber,
		UserID:          user.ID,
		BuyerName:       user.Name,
		BuyerEmail:      user.Email,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		Amount:          total,
		PaymentMethod:   req.Method.String(),
		PaymentStatus:   paymentStatus,
		Status:          orderStatus,
		OrderItems:      items,
	}
}

// statusesFor maps the payment outcome to the order's initial statuses.
// Cash on delivery settles at the doorstep; a Pending mobile money
// initiation commits the order but keeps payment unconfirmed.
func statusesFor(method payments.Method, outcome payments.Outcome) (paymentStatus, orderStatus string) {
	switch {
	case method == payments.MethodCashOnDelivery:
		return models.PaymentStatusAwaitingDelivery, models.OrderStatusConfirmed
	case outcome.Status == payments.StatusPending:
		return models.PaymentStatusPending, models.OrderStatusPending
	default:
		return models.PaymentStatusPaid, models.OrderStatusConfirmed
	}
}

func (s *CheckoutService) recordPayment(ctx context.Context, order *models.Order, userID uuid.UUID, outcome payments.Outcome) {
	payment := &models.Payment{
		ID:             uuid.New(),
		OrderID:        order.ID,
		UserID:         userID,
		Amount:         order.Amount,
		Currency:       s.currency,
		Method:         order.PaymentMethod,
		Status:         string(outcome.Status),
		TransactionRef: outcome.TransactionRef,
		Note:           outcome.Note,
	}
	if err := s.payRepo.Create(ctx, payment); err != nil {
		zap.L().Warn("failed to record payment audit row",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

// notify fires the post-commit side effects. Best-effort: the order is
// already recorded and the user already has their confirmation.
func (s *CheckoutService) notify(ctx context.Context, order *models.Order) {
	if s.events != nil {
		event := models.OrderCreatedEvent{
			Event:         "order.created",
			OrderID:       order.ID.String(),
			OrderNumber:   order.OrderNumber,
			UserID:        order.UserID.String(),
			Amount:        order.Amount,
			PaymentMethod: order.PaymentMethod,
			PaymentStatus: order.PaymentStatus,
			Timestamp:     time.Now(),
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			zap.L().Warn("failed to publish order event", zap.Error(err))
		}
	}

	if s.sms != nil && order.Phone != "" && payments.ValidatePhone(order.Phone) {
		msg := sender.OrderConfirmation(order.OrderNumber, order.Amount)
		if _, err := s.sms.SendSMS(ctx, payments.NormalizePhone(order.Phone), msg); err != nil {
			zap.L().Warn("failed to send confirmation SMS", zap.Error(err))
		}
	}
}

func newOrderNumber() string {
	return "ORD-" + time.Now().Format("20060102-150405") + "-" + uuid.New().String()[:8]
}
