package repository

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository owns the carts of all shoppers.
// Update and View run fn while holding the cart registry lock, so a
// *cart.Store must not be retained after fn returns.
type CartRepository interface {
	Create(ctx context.Context) (string, error)
	Update(ctx context.Context, id string, fn func(*cart.Store) error) error
	View(ctx context.Context, id string, fn func(*cart.Store) error) error
	Delete(ctx context.Context, id string) error
}

// InMemoryCartRepository keeps carts in process memory; nothing survives a restart
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*cart.Store
}

// NewInMemoryCartRepository creates an empty cart registry
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string]*cart.Store),
	}
}

// Create registers a new empty cart and returns its ID
func (r *InMemoryCartRepository) Create(ctx context.Context) (string, error) {
	id := uuid.New().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[id] = cart.New()
	return id, nil
}

// Update runs fn with exclusive access to the cart
func (r *InMemoryCartRepository) Update(ctx context.Context, id string, fn func(*cart.Store) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.carts[id]
	if !ok {
		return ErrCartNotFound
	}
	return fn(store)
}

// View runs fn with shared access to the cart; fn must not modify it
func (r *InMemoryCartRepository) View(ctx context.Context, id string, fn func(*cart.Store) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	store, ok := r.carts[id]
	if !ok {
		return ErrCartNotFound
	}
	return fn(store)
}

// Delete removes the cart
func (r *InMemoryCartRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}

// Count returns the number of registered carts
func (r *InMemoryCartRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
