package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/payments"
	"github.com/emmanuel7l7/chicken-farm/repository"
	"github.com/emmanuel7l7/chicken-farm/sender"

	"github.com/google/uuid"
)

// memCartStore keeps carts in a map, mirroring the redis store's contract:
// a missing cart is an empty cart, never an error.
type memCartStore struct {
	mu      sync.Mutex
	carts   map[string]*models.Cart
	failGet bool
	failSet bool
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[string]*models.Cart)}
}

func (s *memCartStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return nil, errors.New("cart store unavailable")
	}
	if cart, ok := s.carts[userID]; ok {
		// Copy so callers mutating the cart don't bypass SaveCart.
		items := make([]models.CartItem, len(cart.Items))
		copy(items, cart.Items)
		return &models.Cart{UserID: cart.UserID, Items: items, UpdatedAt: cart.UpdatedAt}, nil
	}
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
}

func (s *memCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("cart store unavailable")
	}
	cart.UpdatedAt = time.Now()
	s.carts[cart.UserID] = cart
	return nil
}

func (s *memCartStore) DeleteCart(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("cart store unavailable")
	}
	delete(s.carts, userID)
	return nil
}

func (s *memCartStore) put(cart *models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cart.UserID] = cart
}

func (s *memCartStore) items(userID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.carts[userID]; ok {
		return cart.Items
	}
	return nil
}

type memProductRepo struct {
	products map[string]*models.Product
	fail     bool
}

func newMemProductRepo(products ...*models.Product) *memProductRepo {
	repo := &memProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	if r.fail {
		return nil, errors.New("catalog unavailable")
	}
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []string) (map[string]*models.Product, error) {
	if r.fail {
		return nil, errors.New("catalog unavailable")
	}
	found := make(map[string]*models.Product)
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (r *memProductRepo) List(_ context.Context, activeOnly bool, _, _ int) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range r.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) Create(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.IsActive = false
	return nil
}

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders []*models.Order
	fail   bool
}

func (r *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("database unavailable")
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) FindAll(_ context.Context, _, _ int) ([]models.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) FindByIDAndUserID(_ context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID && o.UserID == userID {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *memOrderRepo) FindByID(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, orderID uuid.UUID, status, paymentStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == orderID {
			if status != "" {
				o.Status = status
			}
			if paymentStatus != "" {
				o.PaymentStatus = paymentStatus
			}
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (r *memOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func (r *memOrderRepo) last() *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.orders) == 0 {
		return nil
	}
	return r.orders[len(r.orders)-1]
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
	fail     bool
}

func (r *memPaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("database unavailable")
	}
	r.payments = append(r.payments, payment)
	return nil
}

func (r *memPaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

// stubGateway returns a canned outcome and counts calls. An optional block
// channel lets a test hold a charge open while a second checkout runs.
type stubGateway struct {
	mu      sync.Mutex
	outcome payments.Outcome
	calls   int
	block   chan struct{}
}

func (g *stubGateway) Charge(_ context.Context, _ payments.Method, _ payments.ChargeRequest) payments.Outcome {
	g.mu.Lock()
	g.calls++
	block := g.block
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return g.outcome
}

func (g *stubGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type stubPublisher struct {
	mu     sync.Mutex
	events []models.OrderCreatedEvent
}

func (p *stubPublisher) PublishOrderCreated(_ context.Context, event models.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type stubSMS struct {
	mu       sync.Mutex
	messages []string
}

func (s *stubSMS) SendSMS(_ context.Context, to, msg string) (sender.SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, to+": "+msg)
	return sender.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}
