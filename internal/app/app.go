// Package app builds a cart store and its adapters from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/catalog"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/event"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/notify"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/config"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

type App struct {
	Store *service.CartStore

	closers []func() error
}

type Option func(*builder)

// WithNotifier adds a notifier next to the log notifier.
func WithNotifier(n port.Notifier) Option {
	return func(b *builder) {
		b.notifiers = append(b.notifiers, n)
	}
}

// WithProducerFactory replaces how the Kafka producer is created.
func WithProducerFactory(f func(brokers []string) (sarama.SyncProducer, error)) Option {
	return func(b *builder) {
		b.newProducer = f
	}
}

type builder struct {
	notifiers   []port.Notifier
	newProducer func([]string) (sarama.SyncProducer, error)
}

func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	b := &builder{
		notifiers:   []port.Notifier{notify.NewLogNotifier(nil)},
		newProducer: event.NewSyncProducer,
	}
	for _, opt := range opts {
		opt(b)
	}

	a := &App{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			PoolSize: cfg.Redis.PoolSize,
		})
		a.closers = append(a.closers, rdb.Close)

		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Println("connected to redis")
	}

	cartStorage, err := newCartStorage(cfg, rdb)
	if err != nil {
		return nil, err
	}

	source, err := newCatalogSource(ctx, cfg, rdb)
	if err != nil {
		return nil, err
	}

	store, err := service.NewCartStore(ctx, source, cartStorage, notify.Multi(b.notifiers),
		service.WithStorageKey(cfg.Cart.StorageKey),
		service.WithBelowOnePolicy(cfg.BelowOnePolicy()),
		service.WithMessages(cfg.Cart.Messages),
	)
	if err != nil {
		return nil, err
	}
	a.Store = store

	if cfg.Kafka.Enabled {
		producer, err := b.newProducer(cfg.Kafka.Brokers)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		publisher := event.NewKafkaPublisher(producer, cfg.Cart.StorageKey)
		unsubscribe := store.Subscribe(publisher)
		a.closers = append(a.closers, func() error {
			unsubscribe()
			return publisher.Close()
		})
		log.Printf("publishing cart events to %v", cfg.Kafka.Brokers)
	}

	log.Printf("cart loaded from %s storage with %d items", cfg.Storage.Driver, store.Cart().Size())
	ok = true
	return a, nil
}

// Close releases everything New opened, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newCartStorage(cfg *config.Config, rdb *redis.Client) (port.CartStorage, error) {
	switch cfg.Storage.Driver {
	case "file":
		return storage.NewFileAdapter(cfg.Storage.Path), nil
	case "redis":
		return storage.NewRedisAdapter(rdb), nil
	case "memory":
		return storage.NewMemoryAdapter(), nil
	}
	return nil, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfiguration, cfg.Storage.Driver)
}

func newCatalogSource(ctx context.Context, cfg *config.Config, rdb *redis.Client) (port.CatalogSource, error) {
	client := catalog.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	var source port.CatalogSource = client
	if cfg.Catalog.Preload {
		snapshot, err := catalog.Preload(ctx, client)
		if err != nil {
			return nil, err
		}
		log.Printf("preloaded %d products from %s", len(snapshot.Products), cfg.Catalog.BaseURL)
		source = snapshot
	}

	if cfg.Catalog.StockSource == "redis" {
		return catalog.Split{Products: source, Stock: storage.NewRedisAdapter(rdb)}, nil
	}
	return source, nil
}

// OpenCatalog returns the repository the catalog server reads from: MySQL when
// a DSN is configured, the JSON fixture otherwise.
func OpenCatalog(ctx context.Context, cfg *config.Config) (port.CatalogRepository, func() error, error) {
	if cfg.MySQL.DSN == "" {
		snapshot, err := catalog.LoadFixture(cfg.Catalog.Fixture)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("serving catalog fixture %s", cfg.Catalog.Fixture)
		return snapshot, func() error { return nil }, nil
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}
	log.Println("connected to mysql")

	repo := storage.NewMySQLAdapter(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	if cfg.Catalog.Fixture != "" {
		if err := seedCatalog(ctx, repo, cfg.Catalog.Fixture); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return repo, db.Close, nil
}

// seedCatalog upserts the fixture into an empty products table.
func seedCatalog(ctx context.Context, repo *storage.MySQLAdapter, fixture string) error {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	snapshot, err := catalog.LoadFixture(fixture)
	if err != nil {
		return err
	}
	for _, p := range snapshot.Products {
		if err := repo.SaveProduct(ctx, p); err != nil {
			return err
		}
	}
	for _, s := range snapshot.Stock {
		if err := repo.SetStock(ctx, s); err != nil {
			return err
		}
	}

	log.Printf("seeded %d products from %s", len(snapshot.Products), fixture)
	return nil
}
