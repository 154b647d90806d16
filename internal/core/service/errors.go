package service

import (
	"errors"
	"fmt"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

var (
	ErrOutOfStock = errors.New("requested amount out of stock")
	ErrNotInCart  = errors.New("product not in cart")
)

// Error describes a failed cart operation. The same failure has already been
// reported through the store's Notifier when an Error is returned.
type Error struct {
	Op        string
	ProductID int
	Kind      domain.NotificationKind
	Message   string // localized text sent with the notification
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [product %d]: %v", e.Op, e.ProductID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the notification kind carried by err, if any.
func KindOf(err error) (domain.NotificationKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
