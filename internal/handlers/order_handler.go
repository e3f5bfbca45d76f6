package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// Checkout handles POST /api/cart/{cartId}/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	order, err := h.orderService.Checkout(r.Context(), cartID, middleware.UserID(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCartNotFound):
			WriteError(w, http.StatusNotFound, "Cart not found", h.log)
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart must contain at least one item", h.log)
		default:
			h.log.Error("failed to check out cart", "cart_id", cartID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
