package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/minimartx/storefront/internal/domain"
)

// Client reads product records from the external catalog API. The catalog is
// a black box: read-only, schema-stable, and never retried on failure.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type listResponse struct {
	Products []domain.ProductSnapshot `json:"products"`
}

// List fetches up to limit products.
func (c *Client) List(ctx context.Context, limit int) ([]domain.ProductSnapshot, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create list request: %v", domain.ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned status %d", domain.ErrFetch, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", domain.ErrFetch, err)
	}

	return list.Products, nil
}

// Get fetches a single product by id.
func (c *Client) Get(ctx context.Context, id int) (*domain.ProductSnapshot, error) {
	url := fmt.Sprintf("%s/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create get request: %v", domain.ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, id)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: catalog returned status %d", domain.ErrFetch, resp.StatusCode)
	}

	var product domain.ProductSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("%w: decode product: %v", domain.ErrFetch, err)
	}

	return &product, nil
}
