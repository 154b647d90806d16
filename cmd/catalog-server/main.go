package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/app"
	"github.com/rl1809/rocketshoes-cart/internal/config"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

func main() {
	configPath := flag.String("config", os.Getenv("ROCKETSHOES_CONFIG"), "path to a YAML config file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	repo, closeRepo, err := app.OpenCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open catalog: %v", err)
	}
	defer closeRepo()

	if cfg.Catalog.StockSource == "redis" {
		if err := syncStock(ctx, cfg, repo); err != nil {
			log.Fatalf("failed to sync stock: %v", err)
		}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.NewCatalogHandler(repo).Register(router)

	srv := &http.Server{
		Addr:    cfg.Catalog.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("catalog server listening on %s", cfg.Catalog.ListenAddr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("catalog server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
	log.Println("catalog server stopped")
}

// syncStock copies the catalog stock into the Redis counters the cart reads.
func syncStock(ctx context.Context, cfg *config.Config, repo port.CatalogRepository) error {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	stock, err := repo.ListStock(ctx)
	if err != nil {
		return err
	}

	redisAdapter := storage.NewRedisAdapter(rdb)
	for _, s := range stock {
		if err := redisAdapter.SetStock(ctx, s.ID, s.Amount); err != nil {
			return err
		}
	}

	log.Printf("synced stock of %d products to redis", len(stock))
	return nil
}
