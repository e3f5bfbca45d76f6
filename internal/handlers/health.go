package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger      *slog.Logger
	catalogSize int
	catalogSrc  string
}

// NewHealthHandler creates a new health handler for a catalog of the given size and source
func NewHealthHandler(logger *slog.Logger, catalogSource string, catalogSize int) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		catalogSize: catalogSize,
		catalogSrc:  catalogSource,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
	Catalog   CatalogHealth `json:"catalog"`
}

// CatalogHealth describes the loaded catalog
type CatalogHealth struct {
	Source   string `json:"source"`
	Products int    `json:"products"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Catalog: CatalogHealth{
			Source:   h.catalogSrc,
			Products: h.catalogSize,
		},
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
