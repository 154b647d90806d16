package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrInvalidCart is returned by ParseCart for a cart that decodes but holds a
// product twice or an amount below 1.
var ErrInvalidCart = errors.New("invalid cart")

// Cart is an ordered sequence of line items, unique by product ID.
type Cart []Product

// ParseCart decodes a stored cart. Empty, malformed or invalid input yields an
// empty cart together with the error, so callers can log and carry on.
func ParseCart(data string) (Cart, error) {
	if data == "" {
		return Cart{}, nil
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return Cart{}, err
	}
	if cart == nil {
		cart = Cart{}
	}
	if err := cart.Validate(); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Validate checks that product IDs are unique and every amount is at least 1.
func (c Cart) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for _, p := range c {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: product %d appears more than once", ErrInvalidCart, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Amount < 1 {
			return fmt.Errorf("%w: product %d has amount %d", ErrInvalidCart, p.ID, p.Amount)
		}
	}
	return nil
}

// Encode serializes the cart as a JSON array. A nil cart encodes as [].
func (c Cart) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Product(c))
}

func (c Cart) IndexOf(productID int) int {
	return slices.IndexFunc(c, func(p Product) bool {
		return p.ID == productID
	})
}

func (c Cart) Find(productID int) (Product, bool) {
	i := c.IndexOf(productID)
	if i < 0 {
		return Product{}, false
	}
	return c[i], true
}

// Append returns a new cart with p added at the end.
func (c Cart) Append(p Product) Cart {
	next := make(Cart, 0, len(c)+1)
	next = append(next, c...)
	return append(next, p)
}

// Without returns a new cart excluding productID.
func (c Cart) Without(productID int) Cart {
	next := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID != productID {
			next = append(next, p)
		}
	}
	return next
}

// WithAmount returns a new cart where the matching entry carries amount.
// Entries other than productID are copied unchanged.
func (c Cart) WithAmount(productID, amount int) Cart {
	next := make(Cart, len(c))
	for i, p := range c {
		if p.ID == productID {
			p.Amount = amount
		}
		next[i] = p
	}
	return next
}

func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	return slices.Clone(c)
}

// Size is the number of distinct line items, as shown in the storefront header.
func (c Cart) Size() int {
	return len(c)
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Subtotal())
	}
	return total
}

// Equal compares IDs, catalog fields and amounts in order.
func (c Cart) Equal(other Cart) bool {
	return slices.EqualFunc(c, other, func(a, b Product) bool {
		return a.ID == b.ID &&
			a.Title == b.Title &&
			a.Price.Equal(b.Price) &&
			a.Image == b.Image &&
			a.Amount == b.Amount
	})
}

// CartChange is delivered to observers after every committed mutation.
type CartChange struct {
	Previous Cart
	Current  Cart
}
