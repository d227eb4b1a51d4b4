package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emmanuel7l7/chicken-farm/models"
	"github.com/emmanuel7l7/chicken-farm/repository"
)

// ErrInvalidCartInput marks a cart operation that was rejected before any
// state change; the existing cart is untouched.
var ErrInvalidCartInput = errors.New("invalid cart input")

// CartService owns the current user's purchase intent. Every mutation is
// written through to the durable store before it returns, so a reload
// restores the same cart.
type CartService struct {
	store    repository.CartStore
	products repository.ProductRepository
}

func NewCartService(store repository.CartStore, products repository.ProductRepository) *CartService {
	return &CartService{
		store:    store,
		products: products,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	return s.store.GetCart(ctx, userID)
}

// AddItem merges quantity into an existing line for the product, or appends
// a new line. Invalid inputs reject without mutating the cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidCartInput)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidCartInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, fmt.Errorf("%w: unknown product %s", ErrInvalidCartInput, productID)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is not available", ErrInvalidCartInput, productID)
	}

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line's quantity to an absolute value. Zero or
// negative removes the line. Updating a product not in the cart is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidCartInput)
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Items[i].Quantity = quantity

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.store.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.store.DeleteCart(ctx, userID)
}

// TotalPrice prices the cart against the current catalog. Lines whose
// product has vanished from the catalog contribute nothing; the checkout
// validation rejects them properly later.
func (s *CartService) TotalPrice(ctx context.Context, cart *models.Cart) (int64, error) {
	if cart.IsEmpty() {
		return 0, nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, item := range cart.Items {
		if product, ok := products[item.ProductID]; ok {
			total += product.Price * int64(item.Quantity)
		}
	}
	return total, nil
}
