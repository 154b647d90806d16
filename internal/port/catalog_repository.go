package port

import (
	"context"
	"errors"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

// ErrNotFound is returned by catalog sources for unknown product IDs.
var ErrNotFound = errors.New("not found")

type ProductSource interface {
	// FetchProduct returns catalog data for a product; Amount is left zero
	FetchProduct(ctx context.Context, id int) (domain.Product, error)
}

type StockSource interface {
	// FetchStock returns the quantity currently available for purchase
	FetchStock(ctx context.Context, id int) (domain.Stock, error)
}

type CatalogSource interface {
	ProductSource
	StockSource
}

// CatalogRepository is a catalog that can also list everything it holds.
type CatalogRepository interface {
	CatalogSource

	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListStock(ctx context.Context) ([]domain.Stock, error)
}
