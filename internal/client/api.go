// Package client implements the catalog client: fetching the priced
// collection from the catalog service and maintaining the presentation
// state (filters, color variant selection, star rendering).
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goldgallery/backend/internal/domain"
)

// Filter field names accepted by the catalog service.
const (
	FieldMinPrice      = "minPrice"
	FieldMaxPrice      = "maxPrice"
	FieldMinPopularity = "minPopularity"
	FieldMaxPopularity = "maxPopularity"
)

// APIClient fetches the product collection from the catalog service
type APIClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewAPIClient creates a new catalog API client
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// ListProducts fetches the collection, serializing the supplied filter
// values (string form, as entered by the user) into query parameters.
// Empty values are omitted; the service treats absence as unconstrained.
func (c *APIClient) ListProducts(ctx context.Context, filters map[string]string) ([]domain.PricedProduct, error) {
	params := url.Values{}
	for field, value := range filters {
		if value != "" {
			params.Set(field, value)
		}
	}

	reqURL := fmt.Sprintf("%s/products", c.baseURL)
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching products: unexpected status %d", resp.StatusCode)
	}

	var products []domain.PricedProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return products, nil
}
