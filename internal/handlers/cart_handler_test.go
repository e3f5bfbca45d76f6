package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

func newCartRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.New("error")
	carts := repository.NewInMemoryCartRepository()
	svc := service.NewCartService(carts, repository.NewSeedProductRepository(), cart.DefaultTaxRate, log)
	handler := NewCartHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/cart", handler.CreateCart)
	r.Route("/api/cart/{cartId}", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.DeleteCart)
		r.Post("/items", handler.AddItem)
		r.Delete("/items", handler.ClearCart)
		r.Put("/items/{index}", handler.UpdateQuantity)
		r.Delete("/items/{index}", handler.RemoveItem)
	})
	return r
}

func doCartRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) models.Cart {
	t.Helper()

	var c models.Cart
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("failed to decode cart: %v", err)
	}
	return c
}

func createCart(t *testing.T, r http.Handler) string {
	t.Helper()

	w := doCartRequest(t, r, http.MethodPost, "/api/cart", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
	c := decodeCart(t, w)
	if c.ID == "" {
		t.Fatal("cart ID is empty")
	}
	return c.ID
}

func TestCartHandler_Lifecycle(t *testing.T) {
	r := newCartRouter(t)
	id := createCart(t, r)
	base := "/api/cart/" + id

	// two Books lines, the same product twice stays as two lines
	w := doCartRequest(t, r, http.MethodPost, base+"/items", models.AddItemRequest{ProductID: "17", Quantity: 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	doCartRequest(t, r, http.MethodPost, base+"/items", models.AddItemRequest{ProductID: "18"})
	w = doCartRequest(t, r, http.MethodPost, base+"/items", models.AddItemRequest{ProductID: "18"})

	c := decodeCart(t, w)
	if c.ItemCount != 3 {
		t.Errorf("expected 3 lines, got %d", c.ItemCount)
	}
	if c.Units != 4 {
		t.Errorf("expected 4 units, got %d", c.Units)
	}
	if c.Summary.Subtotal.String() != "1696" {
		t.Errorf("expected subtotal 1696, got %s", c.Summary.Subtotal)
	}
	if c.Summary.Tax.String() != "305.28" {
		t.Errorf("expected tax 305.28, got %s", c.Summary.Tax)
	}
	if c.Summary.Total.String() != "2001.28" {
		t.Errorf("expected total 2001.28, got %s", c.Summary.Total)
	}

	w = doCartRequest(t, r, http.MethodPut, base+"/items/0", models.UpdateQuantityRequest{Quantity: 5})
	c = decodeCart(t, w)
	if c.Lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", c.Lines[0].Quantity)
	}

	// quantities below one are ignored
	w = doCartRequest(t, r, http.MethodPut, base+"/items/0", models.UpdateQuantityRequest{Quantity: 0})
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	c = decodeCart(t, w)
	if c.Lines[0].Quantity != 5 {
		t.Errorf("expected quantity to stay 5, got %d", c.Lines[0].Quantity)
	}

	w = doCartRequest(t, r, http.MethodDelete, base+"/items/1", nil)
	c = decodeCart(t, w)
	if c.ItemCount != 2 || c.Lines[1].ProductID != "18" {
		t.Errorf("unexpected lines after remove: %+v", c.Lines)
	}

	w = doCartRequest(t, r, http.MethodDelete, base+"/items", nil)
	c = decodeCart(t, w)
	if c.ItemCount != 0 || !c.Summary.Total.IsZero() {
		t.Errorf("expected empty cart, got %+v", c)
	}

	w = doCartRequest(t, r, http.MethodGet, base+"/", nil)
	if w.Code != http.StatusOK {
		t.Errorf("get cart: expected status 200, got %d", w.Code)
	}
}

func TestCartHandler_DeleteCart(t *testing.T) {
	r := newCartRouter(t)
	id := createCart(t, r)
	base := "/api/cart/" + id

	doCartRequest(t, r, http.MethodPost, base+"/items", models.AddItemRequest{ProductID: "4"})

	w := doCartRequest(t, r, http.MethodDelete, base, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", w.Code, w.Body.String())
	}

	w = doCartRequest(t, r, http.MethodGet, base+"/", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted cart: expected status 404, got %d", w.Code)
	}

	w = doCartRequest(t, r, http.MethodDelete, base, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete twice: expected status 404, got %d", w.Code)
	}
}

func TestCartHandler_AddUnknownProduct(t *testing.T) {
	r := newCartRouter(t)
	id := createCart(t, r)

	// the cart exists, so a bad productId in the body is a client error, not a missing resource
	w := doCartRequest(t, r, http.MethodPost, "/api/cart/"+id+"/items", models.AddItemRequest{ProductID: "nope"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if response["error"] != "Invalid product" {
		t.Errorf("expected error 'Invalid product', got %s", response["error"])
	}
}

func TestCartHandler_Errors(t *testing.T) {
	r := newCartRouter(t)
	id := createCart(t, r)
	base := "/api/cart/" + id

	tests := []struct {
		name           string
		method         string
		path           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "unknown cart",
			method:         http.MethodGet,
			path:           "/api/cart/does-not-exist/",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown product",
			method:         http.MethodPost,
			path:           base + "/items",
			body:           models.AddItemRequest{ProductID: "999"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative quantity",
			method:         http.MethodPost,
			path:           base + "/items",
			body:           models.AddItemRequest{ProductID: "1", Quantity: -2},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			method:         http.MethodPost,
			path:           base + "/items",
			body:           map[string]string{"sku": "1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric index",
			method:         http.MethodDelete,
			path:           base + "/items/first",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "out of range index is ignored",
			method:         http.MethodDelete,
			path:           base + "/items/7",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "clear unknown cart",
			method:         http.MethodDelete,
			path:           "/api/cart/does-not-exist/items",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doCartRequest(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
