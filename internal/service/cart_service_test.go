package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

func newTestCartService(t *testing.T) (*CartService, string) {
	t.Helper()

	svc := NewCartService(
		repository.NewInMemoryCartRepository(),
		repository.NewSeedProductRepository(),
		cart.DefaultTaxRate,
		logger.New("error"),
	)

	created, err := svc.CreateCart(context.Background())
	if err != nil {
		t.Fatalf("CreateCart() unexpected error = %v", err)
	}
	return svc, created.ID
}

func TestCartService_AddItem(t *testing.T) {
	tests := []struct {
		name         string
		req          models.AddItemRequest
		wantErr      error
		wantQuantity int
	}{
		{name: "explicit quantity", req: models.AddItemRequest{ProductID: "1", Quantity: 3}, wantQuantity: 3},
		{name: "omitted quantity defaults to one", req: models.AddItemRequest{ProductID: "1"}, wantQuantity: 1},
		{name: "negative quantity", req: models.AddItemRequest{ProductID: "1", Quantity: -2}, wantErr: ErrInvalidQuantity},
		{name: "unknown product", req: models.AddItemRequest{ProductID: "999", Quantity: 1}, wantErr: ErrInvalidProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, id := newTestCartService(t)

			got, err := svc.AddItem(context.Background(), id, tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddItem() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("AddItem() unexpected error = %v", err)
			}
			if got.ItemCount != 1 {
				t.Fatalf("AddItem() lines = %d, want 1", got.ItemCount)
			}
			if got.Lines[0].Quantity != tt.wantQuantity {
				t.Errorf("AddItem() quantity = %d, want %d", got.Lines[0].Quantity, tt.wantQuantity)
			}
		})
	}
}

func TestCartService_UnknownCart(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	if _, err := svc.GetCart(ctx, "missing"); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("GetCart() error = %v, want %v", err, repository.ErrCartNotFound)
	}
	if _, err := svc.AddItem(ctx, "missing", models.AddItemRequest{ProductID: "1"}); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("AddItem() error = %v, want %v", err, repository.ErrCartNotFound)
	}
	if _, err := svc.ClearCart(ctx, "missing"); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("ClearCart() error = %v, want %v", err, repository.ErrCartNotFound)
	}
}

func TestCartService_DeleteCart(t *testing.T) {
	carts := repository.NewInMemoryCartRepository()
	svc := NewCartService(carts, repository.NewSeedProductRepository(), cart.DefaultTaxRate, logger.New("error"))
	ctx := context.Background()

	created, err := svc.CreateCart(ctx)
	if err != nil {
		t.Fatalf("CreateCart() unexpected error = %v", err)
	}
	if carts.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", carts.Count())
	}

	if err := svc.DeleteCart(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCart() unexpected error = %v", err)
	}
	if carts.Count() != 0 {
		t.Errorf("Count() = %d after delete, want 0", carts.Count())
	}
	if err := svc.DeleteCart(ctx, created.ID); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("DeleteCart() error = %v, want %v", err, repository.ErrCartNotFound)
	}
}

func TestCartService_Flow(t *testing.T) {
	svc, id := newTestCartService(t)
	ctx := context.Background()

	// Product 17 costs 499 and product 18 costs 349 in the seed catalog
	if _, err := svc.AddItem(ctx, id, models.AddItemRequest{ProductID: "17", Quantity: 2}); err != nil {
		t.Fatalf("AddItem() unexpected error = %v", err)
	}
	got, err := svc.AddItem(ctx, id, models.AddItemRequest{ProductID: "18", Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem() unexpected error = %v", err)
	}
	if !got.Summary.Subtotal.Equal(decimal.NewFromInt(1347)) {
		t.Errorf("subtotal = %s, want 1347", got.Summary.Subtotal)
	}
	if got.Summary.Tax.StringFixed(2) != "242.46" {
		t.Errorf("tax = %s, want 242.46", got.Summary.Tax.StringFixed(2))
	}
	if got.Summary.Total.StringFixed(2) != "1589.46" {
		t.Errorf("total = %s, want 1589.46", got.Summary.Total.StringFixed(2))
	}

	// Quantity below one is ignored
	got, err = svc.UpdateQuantity(ctx, id, 0, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity() unexpected error = %v", err)
	}
	if got.Lines[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", got.Lines[0].Quantity)
	}

	got, err = svc.UpdateQuantity(ctx, id, 1, 4)
	if err != nil {
		t.Fatalf("UpdateQuantity() unexpected error = %v", err)
	}
	if got.Units != 6 {
		t.Errorf("units = %d, want 6", got.Units)
	}

	// Out of range index is ignored
	got, err = svc.RemoveItem(ctx, id, 9)
	if err != nil {
		t.Fatalf("RemoveItem() unexpected error = %v", err)
	}
	if got.ItemCount != 2 {
		t.Errorf("lines = %d, want 2", got.ItemCount)
	}

	got, err = svc.RemoveItem(ctx, id, 0)
	if err != nil {
		t.Fatalf("RemoveItem() unexpected error = %v", err)
	}
	if got.ItemCount != 1 || got.Lines[0].ProductID != "18" {
		t.Errorf("after remove lines = %+v", got.Lines)
	}

	got, err = svc.ClearCart(ctx, id)
	if err != nil {
		t.Fatalf("ClearCart() unexpected error = %v", err)
	}
	if got.ItemCount != 0 || !got.Summary.Subtotal.IsZero() {
		t.Errorf("after clear = %+v", got)
	}
}
