package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/catalog"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

const (
	cartKey       = "@RocketShoes:stress"
	productID     = 1
	initialStock  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	fixture := os.Getenv("ROCKETSHOES_CATALOG_FIXTURE")
	if fixture == "" {
		fixture = "configs/server.json"
	}

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, cartKey)

	redisAdapter := storage.NewRedisAdapter(rdb)
	if err := redisAdapter.SetStock(ctx, productID, initialStock); err != nil {
		log.Fatalf("failed to set stock: %v", err)
	}

	products, err := catalog.LoadFixture(fixture)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	store, err := service.NewCartStore(ctx,
		catalog.Split{Products: products, Stock: redisAdapter},
		redisAdapter,
		nil,
		service.WithStorageKey(cartKey),
	)
	if err != nil {
		log.Fatalf("failed to create cart store: %v", err)
	}

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent adds of the same product
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := store.AddProduct(ctx, productID); err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && fail == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d adds succeeded, %d failed\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d fail, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, fail)
	}

	// Verify the persisted cart
	raw, err := rdb.Get(ctx, cartKey).Result()
	if err != nil {
		log.Fatalf("failed to read cart: %v", err)
	}

	reloaded, err := service.NewCartStore(ctx, products, redisAdapter, nil, service.WithStorageKey(cartKey))
	if err != nil {
		log.Fatalf("failed to reload cart: %v", err)
	}
	cart := reloaded.Cart()
	fmt.Printf("Persisted Cart:   %s\n", raw)

	entries := 0
	amount := 0
	for _, p := range cart {
		if p.ID == productID {
			entries++
			amount = p.Amount
		}
	}

	if entries == 1 && amount == initialStock {
		fmt.Printf("PASS: One entry with amount %d\n", amount)
	} else {
		fmt.Printf("FAIL: Expected one entry with amount %d, got %d entries (amount %d)\n", initialStock, entries, amount)
	}
}
