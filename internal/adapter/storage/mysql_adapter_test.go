package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/rocketshoes?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func setupCatalog(t *testing.T) (*sql.DB, *MySQLAdapter) {
	db := getMySQLDB(t)
	adapter := NewMySQLAdapter(db)

	if err := adapter.EnsureSchema(context.Background()); err != nil {
		db.Close()
		t.Fatalf("schema setup failed: %v", err)
	}

	return db, adapter
}

func TestFetchProduct_Success(t *testing.T) {
	db, adapter := setupCatalog(t)
	defer db.Close()

	ctx := context.Background()

	// Setup
	want := domain.Product{ID: 9001, Title: "Tênis de Teste", Price: decimal.RequireFromString("179.90"), Image: "https://example.com/9001.jpg"}
	if err := adapter.SaveProduct(ctx, want); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, want.ID)

	// Test
	got, err := adapter.FetchProduct(ctx, want.ID)
	if err != nil {
		t.Fatalf("FetchProduct failed: %v", err)
	}

	if got.Title != want.Title || !got.Price.Equal(want.Price) || got.Image != want.Image {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFetchProduct_NotFound(t *testing.T) {
	db, adapter := setupCatalog(t)
	defer db.Close()

	ctx := context.Background()
	db.ExecContext(ctx, `DELETE FROM products WHERE id = 9999`)

	_, err := adapter.FetchProduct(ctx, 9999)
	if !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestSetStock_Upsert(t *testing.T) {
	db, adapter := setupCatalog(t)
	defer db.Close()

	ctx := context.Background()
	defer db.ExecContext(ctx, `DELETE FROM inventory WHERE item_id = 9002`)

	if err := adapter.SetStock(ctx, domain.Stock{ID: 9002, Amount: 5}); err != nil {
		t.Fatalf("SetStock failed: %v", err)
	}
	if err := adapter.SetStock(ctx, domain.Stock{ID: 9002, Amount: 3}); err != nil {
		t.Fatalf("SetStock failed: %v", err)
	}

	stock, err := adapter.FetchStock(ctx, 9002)
	if err != nil {
		t.Fatalf("FetchStock failed: %v", err)
	}
	if stock.Amount != 3 {
		t.Errorf("expected stock 3, got %d", stock.Amount)
	}

	var version int
	db.QueryRowContext(ctx, `SELECT version FROM inventory WHERE item_id = 9002`).Scan(&version)
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
}

func TestListStock(t *testing.T) {
	db, adapter := setupCatalog(t)
	defer db.Close()

	ctx := context.Background()
	defer db.ExecContext(ctx, `DELETE FROM inventory WHERE item_id IN (9003, 9004)`)

	adapter.SetStock(ctx, domain.Stock{ID: 9004, Amount: 1})
	adapter.SetStock(ctx, domain.Stock{ID: 9003, Amount: 2})

	stock, err := adapter.ListStock(ctx)
	if err != nil {
		t.Fatalf("ListStock failed: %v", err)
	}

	var found []int
	for _, s := range stock {
		if s.ID == 9003 || s.ID == 9004 {
			found = append(found, s.ID)
		}
	}
	if len(found) != 2 || found[0] != 9003 {
		t.Errorf("expected ordered ids [9003 9004], got %v", found)
	}
}
