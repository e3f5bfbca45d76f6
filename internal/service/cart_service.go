package service

import (
	"context"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ProductLookup is the part of the product repository the cart needs
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CartService applies shopper actions to carts held in the cart repository
type CartService struct {
	carts    repository.CartRepository
	products ProductLookup
	taxRate  decimal.Decimal
	log      *slog.Logger
}

// NewCartService creates a new cart service
func NewCartService(carts repository.CartRepository, products ProductLookup, taxRate decimal.Decimal, log *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		taxRate:  taxRate,
		log:      log,
	}
}

// TaxRate returns the rate used for cart summaries
func (s *CartService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// CreateCart registers a new empty cart
func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	id, err := s.carts.Create(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "create cart")
	}

	s.log.Debug("cart created", "cart_id", id)
	return s.GetCart(ctx, id)
}

// GetCart returns the cart view with its order summary
func (s *CartService) GetCart(ctx context.Context, id string) (*models.Cart, error) {
	var view *models.Cart
	err := s.carts.View(ctx, id, func(store *cart.Store) error {
		view = s.view(id, store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// AddItem adds productID to the cart as a new line. A zero quantity means one.
func (s *CartService) AddItem(ctx context.Context, id string, req models.AddItemRequest) (*models.Cart, error) {
	if req.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, errors.Wrap(err, "lookup product")
	}

	return s.update(ctx, id, func(store *cart.Store) {
		line := store.AddItem(*product, req.Quantity)
		s.log.Debug("cart item added", "cart_id", id, "product_id", line.ProductID, "quantity", line.Quantity)
	})
}

// UpdateQuantity sets the quantity of the line at index. Quantities below one
// and unknown indexes leave the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, index, quantity int) (*models.Cart, error) {
	return s.update(ctx, id, func(store *cart.Store) {
		store.UpdateQuantity(index, quantity)
	})
}

// RemoveItem removes the line at index; unknown indexes leave the cart unchanged
func (s *CartService) RemoveItem(ctx context.Context, id string, index int) (*models.Cart, error) {
	return s.update(ctx, id, func(store *cart.Store) {
		store.RemoveItem(index)
	})
}

// ClearCart removes every line
func (s *CartService) ClearCart(ctx context.Context, id string) (*models.Cart, error) {
	return s.update(ctx, id, func(store *cart.Store) {
		store.Clear()
	})
}

// DeleteCart discards the cart and everything in it
func (s *CartService) DeleteCart(ctx context.Context, id string) error {
	if err := s.carts.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Debug("cart deleted", "cart_id", id)
	return nil
}

func (s *CartService) update(ctx context.Context, id string, fn func(*cart.Store)) (*models.Cart, error) {
	var view *models.Cart
	err := s.carts.Update(ctx, id, func(store *cart.Store) error {
		fn(store)
		view = s.view(id, store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *CartService) view(id string, store *cart.Store) *models.Cart {
	return &models.Cart{
		ID:        id,
		Lines:     store.Lines(),
		ItemCount: store.Len(),
		Units:     store.Units(),
		Summary:   store.Summary(s.taxRate),
	}
}
