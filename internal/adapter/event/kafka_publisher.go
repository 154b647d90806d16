package event

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

const (
	TopicItemAdded   = "cart.item.added"
	TopicItemRemoved = "cart.item.removed"
	TopicItemUpdated = "cart.item.updated"
)

type ItemEvent struct {
	EventID        string          `json:"event_id"`
	Type           string          `json:"type"`
	CartKey        string          `json:"cart_key"`
	ProductID      int             `json:"product_id"`
	Title          string          `json:"title"`
	Price          decimal.Decimal `json:"price"`
	Amount         int             `json:"amount"`
	PreviousAmount int             `json:"previous_amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// Diff lists the line item events that turn change.Previous into
// change.Current: additions and amount updates in cart order, then removals.
func Diff(change domain.CartChange) []ItemEvent {
	var events []ItemEvent

	for _, p := range change.Current {
		before, ok := change.Previous.Find(p.ID)
		switch {
		case !ok:
			events = append(events, newItemEvent(TopicItemAdded, p, 0))
		case before.Amount != p.Amount:
			events = append(events, newItemEvent(TopicItemUpdated, p, before.Amount))
		}
	}

	for _, p := range change.Previous {
		if _, ok := change.Current.Find(p.ID); !ok {
			removed := p
			removed.Amount = 0
			events = append(events, newItemEvent(TopicItemRemoved, removed, p.Amount))
		}
	}

	return events
}

func newItemEvent(topic string, p domain.Product, previous int) ItemEvent {
	return ItemEvent{
		Type:           topic,
		ProductID:      p.ID,
		Title:          p.Title,
		Price:          p.Price,
		Amount:         p.Amount,
		PreviousAmount: previous,
	}
}

// KafkaPublisher observes a cart store and publishes its line item changes.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	cartKey  string
}

func NewKafkaPublisher(producer sarama.SyncProducer, cartKey string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, cartKey: cartKey}
}

func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return sarama.NewSyncProducer(brokers, config)
}

func (p *KafkaPublisher) CartChanged(change domain.CartChange) {
	now := time.Now().UTC()

	for _, ev := range Diff(change) {
		ev.EventID = uuid.NewString()
		ev.CartKey = p.cartKey
		ev.OccurredAt = now

		data, err := json.Marshal(ev)
		if err != nil {
			log.Printf("failed to marshal %s event: %v", ev.Type, err)
			continue
		}

		msg := &sarama.ProducerMessage{
			Topic: ev.Type,
			Key:   sarama.StringEncoder(strconv.Itoa(ev.ProductID)),
			Value: sarama.ByteEncoder(data),
		}

		if _, _, err := p.producer.SendMessage(msg); err != nil {
			log.Printf("failed to publish %s for product %d: %v", ev.Type, ev.ProductID, err)
		}
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
