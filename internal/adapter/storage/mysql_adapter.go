package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

var productColumns = []string{"id", "title", "price", "image"}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id INT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		price DECIMAL(10, 2) NOT NULL,
		image VARCHAR(1024) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		item_id INT PRIMARY KEY,
		stock INT NOT NULL,
		version INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
}

// MySQLAdapter serves the product catalog and inventory tables.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	query, args, err := squirrel.Select(productColumns...).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Product{}, fmt.Errorf("build product query: %w", err)
	}

	var p domain.Product
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Title, &p.Price, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product: %w", err)
	}

	return p, nil
}

func (m *MySQLAdapter) FetchStock(ctx context.Context, id int) (domain.Stock, error) {
	query, args, err := squirrel.Select("item_id", "stock").
		From("inventory").
		Where(squirrel.Eq{"item_id": id}).
		ToSql()
	if err != nil {
		return domain.Stock{}, fmt.Errorf("build inventory query: %w", err)
	}

	var s domain.Stock
	err = m.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Stock{}, fmt.Errorf("stock %d: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return domain.Stock{}, fmt.Errorf("query inventory: %w", err)
	}

	return s, nil
}

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query, args, err := squirrel.Select(productColumns...).From("products").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Image); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (m *MySQLAdapter) ListStock(ctx context.Context) ([]domain.Stock, error) {
	query, args, err := squirrel.Select("item_id", "stock").From("inventory").OrderBy("item_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inventory query: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	stock := []domain.Stock{}
	for rows.Next() {
		var s domain.Stock
		if err := rows.Scan(&s.ID, &s.Amount); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		stock = append(stock, s)
	}

	return stock, rows.Err()
}

// SaveProduct inserts or replaces the catalog row of p.
func (m *MySQLAdapter) SaveProduct(ctx context.Context, p domain.Product) error {
	_, err := squirrel.Insert("products").
		SetMap(map[string]interface{}{
			"id":    p.ID,
			"title": p.Title,
			"price": p.Price,
			"image": p.Image,
		}).
		Suffix("ON DUPLICATE KEY UPDATE title = VALUES(title), price = VALUES(price), image = VALUES(image)").
		RunWith(m.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID, err)
	}
	return nil
}

// SetStock overwrites the available quantity and bumps the row version.
func (m *MySQLAdapter) SetStock(ctx context.Context, s domain.Stock) error {
	_, err := squirrel.Insert("inventory").
		Columns("item_id", "stock", "version").
		Values(s.ID, s.Amount, 0).
		Suffix("ON DUPLICATE KEY UPDATE stock = VALUES(stock), version = version + 1").
		RunWith(m.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("upsert inventory %d: %w", s.ID, err)
	}
	return nil
}
