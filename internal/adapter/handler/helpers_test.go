package handler

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/catalog"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

func testCatalog() *catalog.Snapshot {
	return &catalog.Snapshot{
		Products: []domain.Product{
			{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "tenis1.jpg"},
			{ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.RequireFromString("139.9"), Image: "tenis2.jpg"},
		},
		Stock: []domain.Stock{
			{ID: 1, Amount: 3},
			{ID: 2, Amount: 1},
		},
	}
}

func newTestStore(t *testing.T) *service.CartStore {
	t.Helper()

	store, err := service.NewCartStore(context.Background(), testCatalog(), storage.NewMemoryAdapter(), nil)
	if err != nil {
		t.Fatalf("NewCartStore() error = %v", err)
	}
	return store
}
