package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/emmanuel7l7/chicken-farm/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CartStore is the durable key-value store behind the cart. Mutations are
// persisted by the cart service after every in-memory change.
type CartStore interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}

type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// GetCart loads the persisted cart. A missing key or a corrupted payload
// both yield a fresh empty cart rather than an error, so a bad blob can
// never lock a user out of shopping.
func (r *CartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	key := r.getKey(userID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return emptyCart(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCart(userID, []byte(data)), nil
}

// decodeCart parses a persisted cart payload. A corrupted blob is
// discarded in favor of an empty cart, never surfaced as an error.
func decodeCart(userID string, data []byte) *models.Cart {
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		zap.L().Warn("discarding corrupted cart payload",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return emptyCart(userID)
	}
	cart.UserID = userID
	return &cart
}

func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	key := r.getKey(cart.UserID)
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *CartRepository) DeleteCart(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}

func emptyCart(userID string) *models.Cart {
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}
}
