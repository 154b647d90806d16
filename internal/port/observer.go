package port

import "github.com/rl1809/rocketshoes-cart/internal/core/domain"

// CartObserver is called synchronously after each committed cart change.
// Implementations must not call mutating store operations from CartChanged.
type CartObserver interface {
	CartChanged(change domain.CartChange)
}

type ObserverFunc func(change domain.CartChange)

func (f ObserverFunc) CartChanged(change domain.CartChange) {
	f(change)
}
