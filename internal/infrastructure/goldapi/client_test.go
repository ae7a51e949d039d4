package goldapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goldgallery/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", 10*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "https://api.example.com", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", 0)

	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
}

func TestSetDebug(t *testing.T) {
	client := NewClient("test-api-key", "https://api.example.com", time.Second)

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPricePerGram_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/goldprice", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(priceResponse{Price: 2000})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)
	ctx := context.Background()

	price, err := client.PricePerGram(ctx)

	require.NoError(t, err)
	// 2000 / 31.1035 = 64.3047... -> 64.30 per gram
	assert.Equal(t, 64.30, price)
}

func TestPricePerGram_ConvertsAndRounds(t *testing.T) {
	tests := []struct {
		name     string
		perOunce float64
		perGram  float64
	}{
		{"typical quote", 1866.21, 60.0},
		{"rounds up", 2500, 80.38},   // 80.3767...
		{"rounds down", 1000, 32.15}, // 32.1507...
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(priceResponse{Price: tt.perOunce})
			}))
			defer server.Close()

			client := NewClient("test-api-key", server.URL, time.Second)

			price, err := client.PricePerGram(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.perGram, price)
		})
	}
}

func TestPricePerGram_ServerError_Retries(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(priceResponse{Price: 2000})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 64.30, price)
	assert.Equal(t, 3, attempts)
}

func TestPricePerGram_TooManyRequests_Retries(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(priceResponse{Price: 2000})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 64.30, price)
	assert.Equal(t, 2, attempts)
}

func TestPricePerGram_ClientError_NoRetry(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	assert.Zero(t, price)
	assert.ErrorIs(t, err, domain.ErrGoldAPIFailure)
	assert.Equal(t, 1, attempts) // Should not retry 4xx errors
}

func TestPricePerGram_AllRetriesFail(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	assert.Zero(t, price)
	assert.ErrorIs(t, err, domain.ErrGoldAPIFailure)
	assert.Equal(t, 3, attempts)
}

func TestPricePerGram_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	assert.Zero(t, price)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestPricePerGram_NonPositivePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(priceResponse{Price: 0})
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, time.Second)

	price, err := client.PricePerGram(context.Background())

	assert.Zero(t, price)
	assert.ErrorIs(t, err, domain.ErrGoldAPIFailure)
}

func TestPricePerGram_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-api-key", server.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	price, err := client.PricePerGram(ctx)

	assert.Zero(t, price)
	assert.Error(t, err)
}

func TestPricePerGram_RequestCreationError(t *testing.T) {
	client := NewClient("test-api-key", "://invalid-url", time.Second)

	price, err := client.PricePerGram(context.Background())

	assert.Zero(t, price)
	assert.Error(t, err)
}

func TestReadLimitedBody(t *testing.T) {
	t.Run("reads within limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("short content"))
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 1000)
		require.NoError(t, err)
		assert.Equal(t, "short content", string(body))
	})

	t.Run("truncates beyond limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for i := 0; i < 100; i++ {
				w.Write([]byte("0123456789"))
			}
		}))
		defer server.Close()

		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := readLimitedBody(resp.Body, 100)
		require.NoError(t, err)
		assert.Len(t, body, 100)
	})
}
