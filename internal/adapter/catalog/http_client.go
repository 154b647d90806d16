package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

const requestIDHeader = "X-Request-ID"

// HTTPClient reads products and stock from the storefront API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) FetchProduct(ctx context.Context, id int) (domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/products/"+strconv.Itoa(id), &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (c *HTTPClient) FetchStock(ctx context.Context, id int) (domain.Stock, error) {
	var s domain.Stock
	if err := c.get(ctx, "/stock/"+strconv.Itoa(id), &s); err != nil {
		return domain.Stock{}, err
	}
	return s, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *HTTPClient) ListStock(ctx context.Context) ([]domain.Stock, error) {
	var stock []domain.Stock
	if err := c.get(ctx, "/stock", &stock); err != nil {
		return nil, err
	}
	return stock, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: %w", path, port.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
