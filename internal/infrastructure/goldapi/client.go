package goldapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/goldgallery/backend/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// gramsPerTroyOunce converts the upstream per-ounce quote to a per-gram price.
const gramsPerTroyOunce = 31.1035

// maxBodyBytes caps how much of an upstream response body is read.
const maxBodyBytes = 1 << 20

// priceResponse is the upstream payload: a single USD price per troy ounce.
type priceResponse struct {
	Price float64 `json:"price"`
}

// Client handles communication with the gold price API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new gold price API client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// The free tier allows roughly 10k requests per month, so stay well
	// under one request per second with a small burst allowance.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// debugLog logs only when debug mode is enabled
func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[GOLDAPI] "+format, args...)
	}
}

// PricePerGram fetches the current gold price and converts it to USD per
// gram, rounded to 2 decimal places. The caller decides what to do on
// failure; this client never substitutes a fallback itself.
func (c *Client) PricePerGram(ctx context.Context) (float64, error) {
	reqURL := fmt.Sprintf("%s/goldprice", c.baseURL)

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("rate limiter error: %w", err)
		}

		perOunce, retryable, err := c.fetchOnce(ctx, reqURL)
		if err == nil {
			perGram := decimal.NewFromFloat(perOunce).
				Div(decimal.NewFromFloat(gramsPerTroyOunce)).
				Round(2)
			c.debugLog("gold price: %.2f/oz -> %s/g", perOunce, perGram)
			return perGram.InexactFloat64(), nil
		}

		lastErr = err
		if !retryable {
			return 0, err
		}
		c.debugLog("attempt %d failed: %v", attempt, err)
		if attempt < 3 {
			time.Sleep(exponentialBackoff(attempt))
		}
	}

	return 0, lastErr
}

// fetchOnce performs a single upstream request. The second return value
// reports whether the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, reqURL string) (float64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %v", domain.ErrGoldAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := readLimitedBody(resp.Body, maxBodyBytes)
	if err != nil {
		return 0, true, fmt.Errorf("%w: reading body: %v", domain.ErrGoldAPIFailure, err)
	}

	// Retry on 5xx and 429; other 4xx responses (bad key, bad request)
	// won't get better on a second attempt.
	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return 0, retryable, fmt.Errorf("%w: status %d, body: %s", domain.ErrGoldAPIFailure, resp.StatusCode, string(body))
	}

	var priceResp priceResponse
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, false, fmt.Errorf("failed to decode response: %w", err)
	}

	if priceResp.Price <= 0 {
		return 0, false, fmt.Errorf("%w: non-positive price %v", domain.ErrGoldAPIFailure, priceResp.Price)
	}

	return priceResp.Price, false, nil
}

// exponentialBackoff returns the sleep duration before the next retry
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500<<(attempt-1)) * time.Millisecond
}

// readLimitedBody reads at most limit bytes from a response body
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
