package repository

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-faster/errors"
)

// LoadProductsFile reads a JSON array of products from path
func LoadProductsFile(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog file")
	}
	defer f.Close()

	return DecodeProducts(f)
}

// DecodeProducts decodes a JSON array of products. Unknown fields are rejected.
func DecodeProducts(r io.Reader) ([]models.Product, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var products []models.Product
	if err := dec.Decode(&products); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return products, nil
}
