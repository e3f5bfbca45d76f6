// Package cart holds the shopping cart of a single shopper.
//
// A Store is plain single-actor state: it has no locking of its own and
// callers sharing one across goroutines must serialize access.
package cart

import (
	"slices"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the tax applied to the order summary unless configured otherwise
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Store is an ordered sequence of cart lines.
// The zero value is an empty cart ready to use.
type Store struct {
	lines []models.CartLine
}

// New creates an empty cart
func New() *Store {
	return &Store{}
}

// AddItem appends a new line for product. Lines are never merged: adding the
// same product twice yields two lines. A quantity below 1 is stored as 1.
func (s *Store) AddItem(product models.Product, quantity int) models.CartLine {
	if quantity < 1 {
		quantity = 1
	}

	line := models.CartLine{
		ProductID:   product.ID,
		UnitPrice:   product.Price,
		Title:       product.Title,
		Description: product.Description,
		ImageRef:    product.ImageRef,
		Quantity:    quantity,
	}
	s.lines = append(s.lines, line)

	return line
}

// UpdateQuantity sets the quantity of the line at index.
// Quantities below 1 and out-of-range indexes are ignored.
func (s *Store) UpdateQuantity(index, quantity int) {
	if quantity < 1 || !s.inRange(index) {
		return
	}
	s.lines[index].Quantity = quantity
}

// RemoveItem deletes the line at index; out-of-range indexes are ignored
func (s *Store) RemoveItem(index int) {
	if !s.inRange(index) {
		return
	}
	s.lines = slices.Delete(s.lines, index, index+1)
}

// Clear empties the cart
func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Line returns the line at index
func (s *Store) Line(index int) (models.CartLine, bool) {
	if !s.inRange(index) {
		return models.CartLine{}, false
	}
	return s.lines[index], true
}

// Len returns the number of lines, which is what the cart badge shows
func (s *Store) Len() int {
	return len(s.lines)
}

// Units returns the total quantity over all lines
func (s *Store) Units() int {
	units := 0
	for _, line := range s.lines {
		units += line.Quantity
	}
	return units
}

// IsEmpty reports whether the cart has no lines
func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

// Subtotal sums unit price times quantity over all lines
func (s *Store) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range s.lines {
		subtotal = subtotal.Add(line.Amount())
	}
	return subtotal
}

// Tax returns subtotal * rate
func (s *Store) Tax(rate decimal.Decimal) decimal.Decimal {
	return s.Subtotal().Mul(rate)
}

// Total returns subtotal * (1 + rate)
func (s *Store) Total(rate decimal.Decimal) decimal.Decimal {
	return s.Subtotal().Mul(decimal.NewFromInt(1).Add(rate))
}

// Summary builds the order summary for rate. Shipping is always free.
func (s *Store) Summary(rate decimal.Decimal) models.Summary {
	return models.Summary{
		Subtotal: s.Subtotal(),
		TaxRate:  rate,
		Tax:      s.Tax(rate).Round(2),
		Shipping: decimal.Zero,
		Total:    s.Total(rate).Round(2),
	}
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.lines)
}
