package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

const stockKeyPrefix = "stock:"

// RedisAdapter keeps the durable cart key in Redis and can serve live stock
// from stock:<id> counters.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Load(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *RedisAdapter) Save(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisAdapter) FetchStock(ctx context.Context, id int) (domain.Stock, error) {
	amount, err := r.client.Get(ctx, stockKey(id)).Int()
	if errors.Is(err, redis.Nil) {
		return domain.Stock{}, fmt.Errorf("stock %d: %w", id, port.ErrNotFound)
	}
	if err != nil {
		return domain.Stock{}, err
	}

	return domain.Stock{ID: id, Amount: amount}, nil
}

func (r *RedisAdapter) SetStock(ctx context.Context, id, quantity int) error {
	return r.client.Set(ctx, stockKey(id), quantity, 0).Err()
}

func stockKey(id int) string {
	return stockKeyPrefix + strconv.Itoa(id)
}
