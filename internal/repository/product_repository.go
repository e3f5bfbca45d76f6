package repository

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// InMemoryProductRepository serves a catalog held in memory.
// The catalog is read-only after construction and safe for concurrent use.
type InMemoryProductRepository struct {
	products []models.Product
	byID     map[string]int
}

// NewInMemoryProductRepository validates products and keeps them in the given order
func NewInMemoryProductRepository(products []models.Product) (*InMemoryProductRepository, error) {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrapf(err, "catalog entry %d", i)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, errors.Wrapf(ErrDuplicateProduct, "%q", p.ID)
		}
		byID[p.ID] = i
	}

	stored := make([]models.Product, len(products))
	copy(stored, products)

	return &InMemoryProductRepository{
		products: stored,
		byID:     byID,
	}, nil
}

// NewSeedProductRepository creates a repository with the built-in catalog
func NewSeedProductRepository() *InMemoryProductRepository {
	repo, err := NewInMemoryProductRepository(SeedProducts())
	if err != nil {
		panic(err)
	}
	return repo
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// SeedProducts returns the built-in catalog used when no other source is configured
func SeedProducts() []models.Product {
	p := func(id, title, description, price, category string) models.Product {
		return models.Product{
			ID:          id,
			Title:       title,
			Description: description,
			Price:       decimal.RequireFromString(price),
			ImageRef:    "https://cdn.kart.example/products/" + id + ".png",
			Category:    category,
		}
	}

	return []models.Product{
		p("1", "Dell Inspiron 15", "15.6 inch laptop with 16GB RAM and 512GB SSD", "54999", "laptops"),
		p("2", "HP Pavilion x360", "Convertible touchscreen laptop for work and play", "62999", "laptops"),
		p("3", "Lenovo IdeaPad Slim 3", "Lightweight laptop with all-day battery", "41990", "laptops"),
		p("4", "iPhone 15", "6.1 inch display with dual camera system", "79900", "mobiles"),
		p("5", "Samsung Galaxy S24", "AI powered smartphone with 50MP camera", "74999", "mobiles"),
		p("6", "OnePlus Nord CE 4", "Fast charging phone with AMOLED display", "24999", "mobiles"),
		p("7", "AirPods Pro", "Active noise cancelling wireless earbuds", "24900", "EarPods"),
		p("8", "boAt Airdopes 141", "True wireless earbuds with 42 hours playback", "1299", "EarPods"),
		p("9", "iPad Air", "10.9 inch Liquid Retina tablet", "59900", "tablets"),
		p("10", "Samsung Galaxy Tab S9 FE", "Water resistant tablet with S Pen", "36999", "tablets"),
		p("11", "Men's Denim Jacket", "Classic fit washed denim jacket", "2499", "men's"),
		p("12", "Men's Running Shoes", "Breathable mesh running shoes", "3299", "men's"),
		p("13", "Women's Kurta Set", "Cotton printed kurta with palazzo", "1899", "women's"),
		p("14", "Women's Handbag", "Faux leather tote handbag", "1499", "women's"),
		p("15", "Cricket Bat", "English willow bat for leather ball", "8999", "Sports"),
		p("16", "Football", "FIFA quality size 5 football", "1199", "Sports"),
		p("17", "Atomic Habits", "An easy and proven way to build good habits", "499", "Books"),
		p("18", "The Psychology of Money", "Timeless lessons on wealth and happiness", "349", "Books"),
	}
}
