package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartService.CreateCart(r.Context())
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, c, h.log)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartService.GetCart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, c, h.log)
}

// AddItem handles POST /api/cart/{cartId}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	c, err := h.cartService.AddItem(r.Context(), chi.URLParam(r, "cartId"), req)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, c, h.log)
}

// UpdateQuantity handles PUT /api/cart/{cartId}/items/{index}
// Quantities below one and unknown lines leave the cart unchanged.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	index, ok := urlParamInt(r, "index")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid line index", h.log)
		return
	}

	var req models.UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode update quantity request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	c, err := h.cartService.UpdateQuantity(r.Context(), chi.URLParam(r, "cartId"), index, req.Quantity)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, c, h.log)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, ok := urlParamInt(r, "index")
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid line index", h.log)
		return
	}

	c, err := h.cartService.RemoveItem(r.Context(), chi.URLParam(r, "cartId"), index)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, c, h.log)
}

// ClearCart handles DELETE /api/cart/{cartId}/items
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartService.ClearCart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, c, h.log)
}

// DeleteCart handles DELETE /api/cart/{cartId}
func (h *CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.DeleteCart(r.Context(), chi.URLParam(r, "cartId")); err != nil {
		h.writeCartError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
		WriteError(w, http.StatusNotFound, "Cart not found", h.log)
	case errors.Is(err, service.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
	case errors.Is(err, service.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.log)
	default:
		h.log.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
