package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart must contain at least one item")

// OrderService turns carts into orders
type OrderService struct {
	carts   repository.CartRepository
	taxRate decimal.Decimal
	log     *slog.Logger
	now     func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(carts repository.CartRepository, taxRate decimal.Decimal, log *slog.Logger) *OrderService {
	return &OrderService{
		carts:   carts,
		taxRate: taxRate,
		log:     log,
		now:     time.Now,
	}
}

// Checkout snapshots the cart into a new order and empties the cart.
// userID is empty when checkout is not behind authentication.
func (s *OrderService) Checkout(ctx context.Context, cartID, userID string) (*models.Order, error) {
	var order *models.Order

	err := s.carts.Update(ctx, cartID, func(store *cart.Store) error {
		if store.IsEmpty() {
			return ErrEmptyCart
		}

		order = &models.Order{
			ID:        generateOrderID(),
			CartID:    cartID,
			UserID:    userID,
			Lines:     store.Lines(),
			Summary:   store.Summary(s.taxRate),
			CreatedAt: s.now().UTC(),
		}
		store.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		"order_id", order.ID,
		"cart_id", cartID,
		"user_id", userID,
		"lines", len(order.Lines),
		"total", order.Summary.Total.StringFixed(2),
	)
	return order, nil
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
