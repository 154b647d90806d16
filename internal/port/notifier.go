package port

import (
	"context"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

// Notifier delivers user-visible notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
