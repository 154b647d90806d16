package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleCart() Cart {
	return Cart{
		{ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "https://example.com/1.jpg", Amount: 2},
		{ID: 2, Title: "Tênis VR Caminhada Confortável Detalhes Couro Masculino", Price: decimal.RequireFromString("139.9"), Image: "https://example.com/2.jpg", Amount: 1},
	}
}

func TestParseCart_RoundTrip(t *testing.T) {
	cart := sampleCart()

	encoded, err := cart.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := ParseCart(encoded)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !decoded.Equal(cart) {
		t.Errorf("expected %+v, got %+v", cart, decoded)
	}
}

func TestEncode_Idempotent(t *testing.T) {
	cart := sampleCart()

	first, _ := cart.Encode()
	second, _ := cart.Encode()

	if first != second {
		t.Errorf("expected identical encodings, got %q and %q", first, second)
	}
}

func TestEncode_NilCart(t *testing.T) {
	var cart Cart

	encoded, err := cart.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if encoded != "[]" {
		t.Errorf("expected [], got %s", encoded)
	}
}

func TestParseCart_Invalid(t *testing.T) {
	tests := []string{"", "not json", "{}", "null"}

	for _, input := range tests {
		cart, _ := ParseCart(input)
		if cart == nil || len(cart) != 0 {
			t.Errorf("input %q: expected empty cart, got %+v", input, cart)
		}
	}
}

func TestParseCart_BrokenRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"duplicate id", `[{"id":1,"price":1,"amount":1},{"id":1,"price":1,"amount":2}]`},
		{"zero amount", `[{"id":2,"price":1,"amount":0}]`},
		{"negative amount", `[{"id":2,"price":1,"amount":-4}]`},
		{"mixed", `[{"id":1,"price":1,"amount":1},{"id":1,"price":1,"amount":2},{"id":2,"price":1,"amount":0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := ParseCart(tt.input)
			if !errors.Is(err, ErrInvalidCart) {
				t.Errorf("expected ErrInvalidCart, got %v", err)
			}
			if cart == nil || len(cart) != 0 {
				t.Errorf("expected empty cart, got %+v", cart)
			}
		})
	}
}

func TestEncode_PriceIsNumber(t *testing.T) {
	cart := Cart{{ID: 1, Title: "Tênis", Price: decimal.RequireFromString("179.9"), Image: "1.jpg", Amount: 2}}

	encoded, err := cart.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !strings.Contains(encoded, `"price":179.9`) {
		t.Errorf("expected numeric price, got %s", encoded)
	}

	decoded, err := ParseCart(encoded)
	if err != nil {
		t.Fatalf("ParseCart failed: %v", err)
	}
	if !decoded.Equal(cart) {
		t.Errorf("expected %+v, got %+v", cart, decoded)
	}
}

func TestParseCart_NumericPrice(t *testing.T) {
	cart, err := ParseCart(`[{"id":3,"title":"Tênis","price":99.9,"image":"x","amount":4}]`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(cart) != 1 || !cart[0].Price.Equal(decimal.RequireFromString("99.9")) || cart[0].Amount != 4 {
		t.Errorf("unexpected cart %+v", cart)
	}
}

func TestCart_AppendWithoutWithAmount(t *testing.T) {
	cart := sampleCart()

	added := cart.Append(Product{ID: 3, Amount: 1})
	if len(cart) != 2 {
		t.Error("append must not modify the receiver")
	}
	if added.IndexOf(3) != 2 || added.IndexOf(1) != 0 {
		t.Errorf("unexpected order %+v", added)
	}

	removed := added.Without(1)
	if len(removed) != 2 || removed[0].ID != 2 || removed[1].ID != 3 {
		t.Errorf("unexpected cart after removal %+v", removed)
	}

	updated := cart.WithAmount(2, 5)
	if updated[1].Amount != 5 || updated[0].Amount != 2 {
		t.Errorf("unexpected amounts %+v", updated)
	}
	if cart[1].Amount != 1 {
		t.Error("WithAmount must not modify the receiver")
	}
}

func TestCart_Totals(t *testing.T) {
	cart := sampleCart()

	if cart.Size() != 2 {
		t.Errorf("expected size 2, got %d", cart.Size())
	}

	want := decimal.RequireFromString("499.7")
	if !cart.Total().Equal(want) {
		t.Errorf("expected total %s, got %s", want, cart.Total())
	}
}

func TestMessages_WithDefaults(t *testing.T) {
	m := Messages{OutOfStock: "Out of stock"}.WithDefaults()

	if m.For(NotificationOutOfStock) != "Out of stock" {
		t.Errorf("custom message lost: %q", m.OutOfStock)
	}
	if m.For(NotificationAddFailed) != DefaultMessages().AddFailed {
		t.Errorf("expected default add message, got %q", m.AddFailed)
	}
}
