package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

const envPrefix = "ROCKETSHOES_"

type Config struct {
	HTTPAddr string        `yaml:"http_addr"`
	GRPCAddr string        `yaml:"grpc_addr"`
	Cart     CartConfig    `yaml:"cart"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Storage  StorageConfig `yaml:"storage"`
	Redis    RedisConfig   `yaml:"redis"`
	MySQL    MySQLConfig   `yaml:"mysql"`
	Kafka    KafkaConfig   `yaml:"kafka"`
}

type CartConfig struct {
	StorageKey     string          `yaml:"storage_key"`
	BelowOnePolicy string          `yaml:"below_one_policy"`
	Messages       domain.Messages `yaml:"messages"`
}

type CatalogConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// StockSource is "http" or "redis".
	StockSource string `yaml:"stock_source"`
	// Preload reads the whole catalog once at startup.
	Preload bool `yaml:"preload"`
	// ListenAddr and Fixture are used by the catalog server.
	ListenAddr string `yaml:"listen_addr"`
	Fixture    string `yaml:"fixture"`
}

type StorageConfig struct {
	// Driver is "file", "redis" or "memory".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	PoolSize int    `yaml:"pool_size"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
}

func Default() *Config {
	return &Config{
		HTTPAddr: ":8080",
		GRPCAddr: ":50051",
		Cart: CartConfig{
			StorageKey:     service.DefaultStorageKey,
			BelowOnePolicy: "remove",
			Messages:       domain.DefaultMessages(),
		},
		Catalog: CatalogConfig{
			BaseURL:     "http://localhost:3333",
			Timeout:     5 * time.Second,
			StockSource: "http",
			ListenAddr:  ":3333",
			Fixture:     "configs/server.json",
		},
		Storage: StorageConfig{
			Driver: "file",
			Path:   "cart.json",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 100,
		},
		Kafka: KafkaConfig{
			Brokers: []string{"localhost:9092"},
		},
	}
}

// Load applies the file at path (when non-empty) and then the environment on
// top of the defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Cart.Messages = c.Cart.Messages.WithDefaults()
	return nil
}

func (c *Config) LoadFromEnv() error {
	if v := os.Getenv(envPrefix + "HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv(envPrefix + "GRPC_ADDR"); v != "" {
		c.GRPCAddr = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_KEY"); v != "" {
		c.Cart.StorageKey = v
	}
	if v := os.Getenv(envPrefix + "BELOW_ONE_POLICY"); v != "" {
		c.Cart.BelowOnePolicy = v
	}
	if v := os.Getenv(envPrefix + "CATALOG_URL"); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := os.Getenv(envPrefix + "CATALOG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sCATALOG_TIMEOUT: %v", ErrInvalidConfiguration, envPrefix, err)
		}
		c.Catalog.Timeout = d
	}
	if v := os.Getenv(envPrefix + "STOCK_SOURCE"); v != "" {
		c.Catalog.StockSource = v
	}
	if v := os.Getenv(envPrefix + "CATALOG_PRELOAD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sCATALOG_PRELOAD: %v", ErrInvalidConfiguration, envPrefix, err)
		}
		c.Catalog.Preload = b
	}
	if v := os.Getenv(envPrefix + "CATALOG_ADDR"); v != "" {
		c.Catalog.ListenAddr = v
	}
	if v := os.Getenv(envPrefix + "CATALOG_FIXTURE"); v != "" {
		c.Catalog.Fixture = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv(envPrefix + "STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}

	if v := firstEnv(envPrefix+"REDIS_ADDR", "REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := firstEnv(envPrefix+"MYSQL_DSN", "MYSQL_DSN"); v != "" {
		c.MySQL.DSN = v
	}

	if v := os.Getenv(envPrefix + "KAFKA_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sKAFKA_ENABLED: %v", ErrInvalidConfiguration, envPrefix, err)
		}
		c.Kafka.Enabled = b
	}
	if v := os.Getenv(envPrefix + "KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.Cart.StorageKey == "" {
		return fmt.Errorf("%w: cart storage key is required", ErrInvalidConfiguration)
	}
	if _, err := service.ParseBelowOnePolicy(c.Cart.BelowOnePolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	switch c.Storage.Driver {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("%w: storage path is required for the file driver", ErrInvalidConfiguration)
		}
	case "redis", "memory":
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfiguration, c.Storage.Driver)
	}

	switch c.Catalog.StockSource {
	case "http", "redis":
	default:
		return fmt.Errorf("%w: unknown stock source %q", ErrInvalidConfiguration, c.Catalog.StockSource)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog base url is required", ErrInvalidConfiguration)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("%w: catalog timeout must be positive", ErrInvalidConfiguration)
	}

	if c.UsesRedis() && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis address is required", ErrInvalidConfiguration)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka brokers are required when kafka is enabled", ErrInvalidConfiguration)
	}

	return nil
}

func (c *Config) BelowOnePolicy() service.BelowOnePolicy {
	policy, _ := service.ParseBelowOnePolicy(c.Cart.BelowOnePolicy)
	return policy
}

// UsesRedis reports whether any component needs a Redis client.
func (c *Config) UsesRedis() bool {
	return c.Storage.Driver == "redis" || c.Catalog.StockSource == "redis"
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
