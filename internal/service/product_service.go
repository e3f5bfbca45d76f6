package service

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidPriceRange = errors.New("minimum price exceeds maximum price")

// ProductQuery carries the raw filter inputs of a listing request.
// Nil prices default to the catalog bounds.
type ProductQuery struct {
	SearchText string
	Categories []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortOrder  catalog.SortOrder
}

// ProductListing is a filtered view of the catalog with its active filters
type ProductListing struct {
	Products      []models.Product     `json:"products"`
	Total         int                  `json:"total"`
	ActiveFilters []catalog.Descriptor `json:"activeFilters"`
	Criteria      catalog.Criteria     `json:"criteria"`
	PriceBounds   catalog.PriceRange   `json:"priceBounds"`
}

// FilterMetadata describes the filters a shopper can apply
type FilterMetadata struct {
	Categories []string            `json:"categories"`
	PriceRange catalog.PriceRange  `json:"priceRange"`
	SortOrders []SortOrderMetadata `json:"sortOrders"`
}

// SortOrderMetadata is a selectable sort order
type SortOrderMetadata struct {
	Value catalog.SortOrder `json:"value"`
	Label string            `json:"label"`
}

// ProductService handles business logic for products
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// SearchProducts filters and sorts the catalog
func (s *ProductService) SearchProducts(ctx context.Context, q ProductQuery) (*ProductListing, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	bounds := catalog.PriceBounds(products)
	criteria := catalog.DefaultCriteria(bounds)
	criteria.SearchText = q.SearchText
	criteria.Categories = append(criteria.Categories, q.Categories...)
	if q.SortOrder != "" {
		criteria.SortOrder = q.SortOrder
	}
	if q.MinPrice != nil {
		criteria.PriceRange.Min = *q.MinPrice
	}
	if q.MaxPrice != nil {
		criteria.PriceRange.Max = *q.MaxPrice
	}
	if criteria.PriceRange.Min.GreaterThan(criteria.PriceRange.Max) {
		return nil, ErrInvalidPriceRange
	}

	result := catalog.Apply(products, criteria)

	return &ProductListing{
		Products:      result,
		Total:         len(result),
		ActiveFilters: catalog.ActiveFilterDescriptors(criteria, bounds),
		Criteria:      criteria,
		PriceBounds:   bounds,
	}, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// RelatedProducts returns the other products in the same category as id
func (s *ProductService) RelatedProducts(ctx context.Context, id string) ([]models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	return catalog.Related(products, *product), nil
}

// FilterMetadata returns the categories, price bounds and sort orders of the catalog
func (s *ProductService) FilterMetadata(ctx context.Context) (*FilterMetadata, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}

	orders := make([]SortOrderMetadata, 0, len(catalog.SortOrders))
	for _, o := range catalog.SortOrders {
		orders = append(orders, SortOrderMetadata{Value: o, Label: o.Label()})
	}

	return &FilterMetadata{
		Categories: catalog.Categories(products),
		PriceRange: catalog.PriceBounds(products),
		SortOrders: orders,
	}, nil
}
