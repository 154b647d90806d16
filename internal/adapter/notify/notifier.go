package notify

import (
	"context"
	"log"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// LogNotifier writes notifications to a standard logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier uses the standard logger when logger is nil.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note domain.Notification) {
	n.logger.Printf("notification %s: %s (product %d): %s", note.ID, note.Kind, note.ProductID, note.Message)
}

// Multi fans a notification out to every notifier in order.
type Multi []port.Notifier

func (m Multi) Notify(ctx context.Context, note domain.Notification) {
	for _, n := range m {
		n.Notify(ctx, note)
	}
}
