package models

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingProductID    = errors.New("product id is required")
	ErrMissingProductTitle = errors.New("product title is required")
	ErrNegativePrice       = errors.New("product price must not be negative")
)

// Product represents an item of the storefront catalog.
// Products are loaded once from the catalog source and never mutated.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"imageRef"`
	Category    string          `json:"category,omitempty"`
}

// Validate checks the product at the catalog-load boundary
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrMissingProductID
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.Wrapf(ErrMissingProductTitle, "product %q", p.ID)
	}
	if p.Price.IsNegative() {
		return errors.Wrapf(ErrNegativePrice, "product %q", p.ID)
	}
	return nil
}
