// Package catalog derives filtered and sorted views of the product catalog.
//
// Every function here is a pure transformation: the catalog passed in is
// never modified and the same inputs always produce the same output.
package catalog

import (
	"slices"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownSortOrder is returned by ParseSortOrder for unsupported values
var ErrUnknownSortOrder = errors.New("unknown sort order")

// SortOrder selects how filtered products are ordered
type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNameAsc   SortOrder = "name_asc"
	SortNameDesc  SortOrder = "name_desc"
)

// SortOrders lists the supported orders in the order they are offered to shoppers
var SortOrders = []SortOrder{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSortOrder converts a query value into a SortOrder. Empty means default.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDefault, nil
	}
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(SortOrders, order) {
		return "", errors.Wrapf(ErrUnknownSortOrder, "%q", s)
	}
	return order, nil
}

// Label returns the human readable name of the order
func (o SortOrder) Label() string {
	switch o {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortNameAsc:
		return "Name: A to Z"
	case SortNameDesc:
		return "Name: Z to A"
	default:
		return "Featured"
	}
}

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains reports whether min <= price <= max
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Criteria is the set of filters a shopper has applied to the catalog
type Criteria struct {
	SearchText string     `json:"searchText"`
	Categories []string   `json:"categories"`
	PriceRange PriceRange `json:"priceRange"`
	SortOrder  SortOrder  `json:"sortOrder"`
}

// DefaultCriteria returns criteria that restrict nothing for a catalog with the given bounds
func DefaultCriteria(bounds PriceRange) Criteria {
	return Criteria{
		Categories: []string{},
		PriceRange: bounds,
		SortOrder:  SortDefault,
	}
}

// PriceBounds returns the lowest and highest price in the catalog.
// An empty catalog yields a zero range.
func PriceBounds(products []models.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{Min: decimal.Zero, Max: decimal.Zero}
	}

	bounds := PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		bounds.Min = decimal.Min(bounds.Min, p.Price)
		bounds.Max = decimal.Max(bounds.Max, p.Price)
	}
	return bounds
}

// Apply filters and sorts products according to criteria.
//
// Filters run in order: search text, categories, price range. The sort is
// stable, so products with equal keys keep their catalog order.
// Search text is trimmed before matching, so surrounding spaces never
// narrow the result.
func Apply(products []models.Product, criteria Criteria) []models.Product {
	search := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	var categories map[string]struct{}
	if len(criteria.Categories) > 0 {
		categories = make(map[string]struct{}, len(criteria.Categories))
		for _, c := range criteria.Categories {
			categories[c] = struct{}{}
		}
	}

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesText(p, search) {
			continue
		}
		if categories != nil {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if !criteria.PriceRange.Contains(p.Price) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, criteria.SortOrder)
	return result
}

func matchesText(p models.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func sortProducts(products []models.Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortNameAsc, SortNameDesc:
		// collators are not safe for concurrent use
		c := collate.New(language.English)
		desc := order == SortNameDesc
		slices.SortStableFunc(products, func(a, b models.Product) int {
			if desc {
				return c.CompareString(b.Title, a.Title)
			}
			return c.CompareString(a.Title, b.Title)
		})
	}
}
