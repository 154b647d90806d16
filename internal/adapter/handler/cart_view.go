package handler

import (
	"errors"
	"net/http"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler/cartrpc"
	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

func toWireCart(cart domain.Cart) *cartrpc.Cart {
	items := make([]cartrpc.CartItem, len(cart))
	for i, p := range cart {
		items[i] = cartrpc.CartItem{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price.StringFixed(2),
			Image:    p.Image,
			Amount:   p.Amount,
			Subtotal: p.Subtotal().StringFixed(2),
		}
	}

	return &cartrpc.Cart{
		Items: items,
		Total: cart.Total().StringFixed(2),
		Size:  cart.Size(),
	}
}

// failureMessage returns the text the user was notified with.
func failureMessage(err error) string {
	var opErr *service.Error
	if errors.As(err, &opErr) && opErr.Message != "" {
		return opErr.Message
	}
	return "internal error"
}

func failureStatus(err error) int {
	kind, ok := service.KindOf(err)

	switch {
	case !ok:
		return http.StatusInternalServerError
	case kind == domain.NotificationOutOfStock:
		return http.StatusGone
	case errors.Is(err, service.ErrNotInCart), errors.Is(err, port.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
