package catalog

import "github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"

// Related returns the other products sharing product's category, in catalog order.
// Products without a category have no related products.
func Related(products []models.Product, product models.Product) []models.Product {
	related := make([]models.Product, 0)
	if product.Category == "" {
		return related
	}

	for _, p := range products {
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
		}
	}
	return related
}

// Categories returns the distinct non-empty categories in catalog order
func Categories(products []models.Product) []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)

	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
