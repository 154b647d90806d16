package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

type lister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListStock(ctx context.Context) ([]domain.Stock, error)
}

// Snapshot answers catalog lookups from lists loaded once. It never sees
// stock changes made after it was built.
type Snapshot struct {
	Products []domain.Product `json:"products"`
	Stock    []domain.Stock   `json:"stock"`
}

// Preload fetches the full product and stock lists from src.
func Preload(ctx context.Context, src lister) (*Snapshot, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("preload products: %w", err)
	}
	stock, err := src.ListStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("preload stock: %w", err)
	}

	return &Snapshot{Products: products, Stock: stock}, nil
}

// LoadFixture reads a {"products": [...], "stock": [...]} document.
func LoadFixture(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &s, nil
}

func (s *Snapshot) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	i := slices.IndexFunc(s.Products, func(p domain.Product) bool { return p.ID == id })
	if i < 0 {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, port.ErrNotFound)
	}
	return s.Products[i], nil
}

func (s *Snapshot) FetchStock(ctx context.Context, id int) (domain.Stock, error) {
	i := slices.IndexFunc(s.Stock, func(st domain.Stock) bool { return st.ID == id })
	if i < 0 {
		return domain.Stock{}, fmt.Errorf("stock %d: %w", id, port.ErrNotFound)
	}
	return s.Stock[i], nil
}

func (s *Snapshot) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return slices.Clone(s.Products), nil
}

func (s *Snapshot) ListStock(ctx context.Context) ([]domain.Stock, error) {
	return slices.Clone(s.Stock), nil
}

// Split combines a product source with a separate stock source.
type Split struct {
	Products port.ProductSource
	Stock    port.StockSource
}

func (s Split) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	return s.Products.FetchProduct(ctx, id)
}

func (s Split) FetchStock(ctx context.Context, id int) (domain.Stock, error) {
	return s.Stock.FetchStock(ctx, id)
}
