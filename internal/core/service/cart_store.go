package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// DefaultStorageKey is the durable slot the storefront keeps its cart in.
const DefaultStorageKey = "@RocketShoes:cart"

// BelowOnePolicy decides what UpdateProductAmount does with amounts below 1.
type BelowOnePolicy int

const (
	// RemoveBelowOne drops the line item from the cart.
	RemoveBelowOne BelowOnePolicy = iota
	// ClampBelowOne keeps the line item with amount 1.
	ClampBelowOne
)

// ParseBelowOnePolicy maps "remove" (or "") and "clamp" to a policy.
func ParseBelowOnePolicy(s string) (BelowOnePolicy, error) {
	switch s {
	case "", "remove":
		return RemoveBelowOne, nil
	case "clamp":
		return ClampBelowOne, nil
	}
	return RemoveBelowOne, fmt.Errorf("unknown below-one policy %q", s)
}

// Option configures a CartStore.
type Option func(*CartStore)

// WithStorageKey replaces DefaultStorageKey. An empty key is ignored.
func WithStorageKey(key string) Option {
	return func(s *CartStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithBelowOnePolicy sets what happens to amounts below 1. Default RemoveBelowOne.
func WithBelowOnePolicy(policy BelowOnePolicy) Option {
	return func(s *CartStore) {
		s.belowOne = policy
	}
}

// WithMessages sets the notification texts; empty ones keep the defaults.
func WithMessages(m domain.Messages) Option {
	return func(s *CartStore) {
		s.messages = m.WithDefaults()
	}
}

type observerEntry struct {
	id       uint64
	observer port.CartObserver
}

// CartStore owns the cart of one storefront session. It validates changes
// against the catalog, persists every committed change to a single durable
// key and tells observers about it.
//
// Operations on the same product ID are serialized; operations on different
// IDs run concurrently and their commits are applied one at a time.
type CartStore struct {
	catalog  port.CatalogSource
	storage  port.CartStorage
	notifier port.Notifier

	key      string
	belowOne BelowOnePolicy
	messages domain.Messages

	locks *keyedMutex

	// commitMu serializes commit and observer delivery
	commitMu sync.Mutex

	mu        sync.RWMutex
	cart      domain.Cart
	observers []observerEntry
	nextID    uint64
}

// NewCartStore loads the cart persisted under the storage key. An absent or
// unreadable value starts an empty cart; a storage error is returned.
func NewCartStore(ctx context.Context, catalog port.CatalogSource, storage port.CartStorage, notifier port.Notifier, opts ...Option) (*CartStore, error) {
	s := &CartStore{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		key:      DefaultStorageKey,
		belowOne: RemoveBelowOne,
		messages: domain.DefaultMessages(),
		locks:    newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = discardNotifier{}
	}

	raw, ok, err := storage.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", s.key, err)
	}

	s.cart = domain.Cart{}
	if ok {
		cart, err := domain.ParseCart(raw)
		if err != nil {
			log.Printf("discarding unreadable cart under %s: %v", s.key, err)
		}
		s.cart = cart
	}

	return s, nil
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() domain.Cart {
	return s.snapshot().Clone()
}

// Subscribe registers o for every committed change until unsubscribe is called.
func (s *CartStore) Subscribe(o port.CartObserver) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, observer: o})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.observers {
				if e.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// AddProduct puts one more unit of productID in the cart. A product already
// in the cart goes through UpdateProductAmount with its amount plus one.
func (s *CartStore) AddProduct(ctx context.Context, productID int) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	if existing, ok := s.snapshot().Find(productID); ok {
		return s.updateAmount(ctx, productID, existing.Amount+1)
	}

	const op = "AddProduct"

	product, err := s.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return s.fail(ctx, op, productID, domain.NotificationAddFailed, fmt.Errorf("fetch product: %w", err))
	}
	product.ID = productID
	product.Amount = 1

	err = s.commit(ctx, func(cart domain.Cart) domain.Cart {
		return cart.Append(product)
	})
	if err != nil {
		return s.fail(ctx, op, productID, domain.NotificationAddFailed, err)
	}

	return nil
}

func (s *CartStore) RemoveProduct(ctx context.Context, productID int) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	return s.remove(ctx, productID)
}

// UpdateProductAmount sets the amount of a product already in the cart after
// checking it against the live stock. Under RemoveBelowOne an amount below 1
// is a RemoveProduct, and a missing product is reported as remove-failed.
func (s *CartStore) UpdateProductAmount(ctx context.Context, productID, amount int) error {
	unlock := s.locks.Lock(productID)
	defer unlock()

	return s.updateAmount(ctx, productID, amount)
}

func (s *CartStore) remove(ctx context.Context, productID int) error {
	const op = "RemoveProduct"

	if _, ok := s.snapshot().Find(productID); !ok {
		return s.fail(ctx, op, productID, domain.NotificationRemoveFailed, ErrNotInCart)
	}

	err := s.commit(ctx, func(cart domain.Cart) domain.Cart {
		return cart.Without(productID)
	})
	if err != nil {
		return s.fail(ctx, op, productID, domain.NotificationRemoveFailed, err)
	}

	return nil
}

func (s *CartStore) updateAmount(ctx context.Context, productID, amount int) error {
	const op = "UpdateProductAmount"

	stock, err := s.catalog.FetchStock(ctx, productID)
	if err != nil {
		return s.fail(ctx, op, productID, domain.NotificationUpdateFailed, fmt.Errorf("fetch stock: %w", err))
	}

	if amount > stock.Amount {
		err := fmt.Errorf("%w: requested %d, available %d", ErrOutOfStock, amount, stock.Amount)
		return s.fail(ctx, op, productID, domain.NotificationOutOfStock, err)
	}

	if amount < 1 {
		if s.belowOne == RemoveBelowOne {
			return s.remove(ctx, productID)
		}
		amount = 1
	}

	if _, ok := s.snapshot().Find(productID); !ok {
		return s.fail(ctx, op, productID, domain.NotificationUpdateFailed, ErrNotInCart)
	}

	err = s.commit(ctx, func(cart domain.Cart) domain.Cart {
		return cart.WithAmount(productID, amount)
	})
	if err != nil {
		return s.fail(ctx, op, productID, domain.NotificationUpdateFailed, err)
	}

	return nil
}

// commit is the only write path to the durable key. Memory is swapped only
// after the new cart has been saved.
func (s *CartStore) commit(ctx context.Context, mutate func(domain.Cart) domain.Cart) error {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	previous := s.snapshot()
	next := mutate(previous)

	encoded, err := next.Encode()
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}

	s.mu.Lock()
	s.cart = next
	observers := make([]port.CartObserver, len(s.observers))
	for i, e := range s.observers {
		observers[i] = e.observer
	}
	s.mu.Unlock()

	change := domain.CartChange{Previous: previous.Clone(), Current: next.Clone()}
	for _, o := range observers {
		o.CartChanged(change)
	}

	return nil
}

func (s *CartStore) snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart
}

func (s *CartStore) fail(ctx context.Context, op string, productID int, kind domain.NotificationKind, err error) error {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		ProductID: productID,
		Message:   s.messages.For(kind),
		CreatedAt: time.Now(),
	}
	s.notifier.Notify(ctx, n)

	return &Error{
		Op:        op,
		ProductID: productID,
		Kind:      kind,
		Message:   n.Message,
		Err:       err,
	}
}

type discardNotifier struct{}

func (discardNotifier) Notify(context.Context, domain.Notification) {}
