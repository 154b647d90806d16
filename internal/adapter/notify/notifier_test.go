package notify

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(log.New(&buf, "", 0))

	n.Notify(context.Background(), domain.Notification{
		ID:        "n-1",
		Kind:      domain.NotificationOutOfStock,
		ProductID: 3,
		Message:   "Quantidade solicitada fora de estoque",
	})

	got := buf.String()
	if !strings.Contains(got, "out_of_stock") || !strings.Contains(got, "product 3") {
		t.Errorf("unexpected log line %q", got)
	}
}

func TestMulti(t *testing.T) {
	var first, second bytes.Buffer
	m := Multi{
		NewLogNotifier(log.New(&first, "", 0)),
		NewLogNotifier(log.New(&second, "", 0)),
	}

	m.Notify(context.Background(), domain.Notification{Kind: domain.NotificationAddFailed})

	if first.Len() == 0 || second.Len() == 0 {
		t.Error("expected both notifiers to be called")
	}
}
