package repository

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// productsQuery reads the catalog in display order. Prices are read as text
// so they keep their exact decimal representation.
const productsQuery = `
	SELECT
		id::text,
		title,
		COALESCE(description, ''),
		price::text,
		COALESCE(image_ref, ''),
		COALESCE(category, '')
	FROM products
	ORDER BY position ASC, id ASC
`

// LoadProductsPostgres reads the catalog from the products table at databaseURL.
// The pool only lives for the duration of the load.
func LoadProductsPostgres(ctx context.Context, databaseURL string) ([]models.Product, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to catalog database")
	}
	defer pool.Close()

	return QueryProducts(ctx, pool)
}

// querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryProducts runs the catalog query on q
func QueryProducts(ctx context.Context, q querier) ([]models.Product, error) {
	rows, err := q.Query(ctx, productsQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		var (
			p     models.Product
			price string
		)
		if err := row.Scan(&p.ID, &p.Title, &p.Description, &price, &p.ImageRef, &p.Category); err != nil {
			return models.Product{}, err
		}

		amount, err := decimal.NewFromString(price)
		if err != nil {
			return models.Product{}, errors.Wrapf(err, "product %q price", p.ID)
		}
		p.Price = amount

		return p, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan products")
	}

	return products, nil
}
