package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a cart line item: catalog data copied at add time plus the
// quantity held in the cart.
type Product struct {
	ID     int             `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

// MarshalJSON writes the price as a JSON number, the way the storefront
// keeps it.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price json.Number `json:"price"`
	}{
		product: product(p),
		Price:   json.Number(p.Price.String()),
	})
}

// Subtotal returns price times amount.
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Amount)))
}

// Stock is the quantity available for purchase of one product.
type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}
