package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a single entry of a cart. Product details are captured when the
// line is added so later catalog changes do not affect it.
type CartLine struct {
	ProductID   string          `json:"productId"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ImageRef    string          `json:"imageRef"`
	Quantity    int             `json:"quantity"`
}

// Amount returns unit price times quantity
func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the API view of a cart with its order summary
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"itemCount"`
	Units     int        `json:"units"`
	Summary   Summary    `json:"summary"`
}

// Summary is the order summary shown next to the cart.
// Tax and total are rounded to two decimal places.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	TaxRate  decimal.Decimal `json:"taxRate"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// AddItemRequest is the body of POST /api/cart/{cartId}/items
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

// UpdateQuantityRequest is the body of PUT /api/cart/{cartId}/items/{index}
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Order is the snapshot of a cart taken at checkout
type Order struct {
	ID        string     `json:"id"`
	CartID    string     `json:"cartId"`
	UserID    string     `json:"userId,omitempty"`
	Lines     []CartLine `json:"lines"`
	Summary   Summary    `json:"summary"`
	CreatedAt time.Time  `json:"createdAt"`
}
