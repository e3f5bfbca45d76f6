package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product
// Query parameters:
// - q: search text matched against title and description
// - category: repeatable category filter
// - minPrice, maxPrice: inclusive price bounds, default to the catalog bounds
// - sort: default, price_asc, price_desc, name_asc or name_desc
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query, msg := parseProductQuery(r)
	if msg != "" {
		h.logger.Warn("invalid product query", "query", r.URL.RawQuery, "reason", msg)
		WriteError(w, http.StatusBadRequest, msg, h.logger)
		return
	}

	listing, err := h.service.SearchProducts(r.Context(), query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPriceRange) {
			WriteError(w, http.StatusBadRequest, "minPrice must not exceed maxPrice", h.logger)
			return
		}

		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, listing, h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeLookupError(w, productID, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// RelatedProducts handles GET /api/product/{productId}/related
func (h *ProductHandler) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	productID, ok := h.productID(w, r)
	if !ok {
		return
	}

	related, err := h.service.RelatedProducts(r.Context(), productID)
	if err != nil {
		h.writeLookupError(w, productID, err)
		return
	}

	WriteJSON(w, http.StatusOK, related, h.logger)
}

// GetFilters handles GET /api/filters
func (h *ProductHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.FilterMetadata(r.Context())
	if err != nil {
		h.logger.Error("failed to build filter metadata", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, meta, h.logger)
}

func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (string, bool) {
	productID := strings.TrimSpace(chi.URLParam(r, "productId"))
	if productID == "" {
		h.logger.Warn("product ID is required")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return "", false
	}
	return productID, true
}

func (h *ProductHandler) writeLookupError(w http.ResponseWriter, productID string, err error) {
	if errors.Is(err, repository.ErrProductNotFound) {
		h.logger.Info("product not found", "productId", productID)
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
		return
	}

	h.logger.Error("failed to get product", "productId", productID, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
}

// parseProductQuery reads the listing filters from the URL. A non-empty
// message describes the first invalid parameter.
func parseProductQuery(r *http.Request) (service.ProductQuery, string) {
	values := r.URL.Query()

	query := service.ProductQuery{
		SearchText: values.Get("q"),
	}

	for _, c := range values["category"] {
		if c = strings.TrimSpace(c); c != "" {
			query.Categories = append(query.Categories, c)
		}
	}

	sortOrder, err := catalog.ParseSortOrder(values.Get("sort"))
	if err != nil {
		return query, "Invalid sort order"
	}
	query.SortOrder = sortOrder

	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &query.MinPrice},
		{"maxPrice", &query.MaxPrice},
	} {
		raw := strings.TrimSpace(values.Get(p.name))
		if raw == "" {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return query, "Invalid " + p.name
		}
		*p.dst = &price
	}

	return query, ""
}
