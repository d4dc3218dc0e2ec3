package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aman-zulfiqar/sui-swap-engine/internal/ai"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/cache"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/catalog"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/constants"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/models"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/oracle"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/server"
	"github.com/aman-zulfiqar/sui-swap-engine/internal/swapengine"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIAddr = ":8091"
	testAPIKey  = "test-api-key-integration"
	testBaseURL = "http://localhost:8091"
)

// fakeUpstream serves the pool catalog and BirdEye-shaped price data that the
// API depends on, so the tests never leave the host.
func fakeUpstream() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/get_pools", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{
			"pool_id": "0xpool",
			"pool_name": "SUI_USDC",
			"base_asset_id": "0xsui",
			"quote_asset_id": "0xusdc",
			"base_asset_decimals": 9,
			"quote_asset_decimals": 6
		}]`))
	})
	mux.HandleFunc("/defi/price", func(w http.ResponseWriter, r *http.Request) {
		price := 0.0
		switch r.URL.Query().Get("address") {
		case "0xsui":
			price = 2.0
		case "0xusdc":
			price = 1.0
		default:
			_, _ = w.Write([]byte(`{"success": true, "data": {}}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"success": true, "data": {"value": %g}}`, price)
	})
	return httptest.NewServer(mux)
}

func setupIntegrationTest(t *testing.T) (*redis.Client, func()) {
	// Check if Redis is available
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   2, // Use different DB for integration tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	// Clear test DB
	_ = redisClient.FlushDB(ctx).Err()

	upstream := fakeUpstream()

	logger := logrus.New()
	swapCache := cache.NewRedisCacheFromClient(redisClient, logger)
	oracleClient := oracle.NewClient(upstream.URL, "test-key", "sui")
	catalogClient := catalog.NewClient(upstream.URL, logger)

	handlers := &server.Handlers{
		Catalog:      catalogClient,
		Oracle:       oracleClient,
		Quotes:       swapengine.NewQuoteEngine(oracleClient, logger),
		Cache:        swapCache,
		AI:           nil,
		AIBaseConfig: ai.AgentConfig{},
		DevMode:      true,
		Logger:       logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: handlers,
		Config: server.ServerConfig{
			Addr:    testAPIAddr,
			DevMode: true,
			APIKey:  testAPIKey,
		},
	})
	require.NoError(t, err)

	// Start server in background
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			t.Logf("Server error: %v", err)
		}
	}()

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(ctx)
		upstream.Close()
		_ = redisClient.FlushDB(ctx).Err()
		_ = redisClient.Close()
	}

	return redisClient, cleanup
}

func makeRequest(t *testing.T, method, url string, expectedStatus int) *http.Response {
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)

	assert.Equal(t, expectedStatus, resp.StatusCode, "Expected status %d, got %d", expectedStatus, resp.StatusCode)

	return resp
}

func TestIntegration_Health(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/health", http.StatusOK)
	defer resp.Body.Close()

	var response server.HealthResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	assert.True(t, response.OK)
}

func TestIntegration_Pools(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/pools", http.StatusOK)
	defer resp.Body.Close()

	var response server.PoolsResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	require.Len(t, response.Items, 1)
	assert.Equal(t, "0xpool", response.Items[0].PoolID)
	assert.Equal(t, 9, response.Items[0].BaseAssetDecimals)
}

func TestIntegration_Quote(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	url := testBaseURL + "/v1/quote?pool_id=0xpool&direction=baseToQuote&amount=2.5&slippage=1"
	resp := makeRequest(t, http.MethodGet, url, http.StatusOK)
	defer resp.Body.Close()

	var response server.QuoteResponse
	err := json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	assert.Equal(t, "0xpool", response.PoolID)
	assert.InDelta(t, 2.0, response.Rate, 1e-9)
	assert.InDelta(t, 5.0, response.EstimatedOut, 1e-9)
	assert.Equal(t, uint64(2_500_000_000), response.AmountInRaw)
	assert.Equal(t, uint64(4_950_000), response.MinOutRaw)
	assert.Equal(t, "0xpool::pool::swap_exact_base_for_quote", response.Target)
	assert.Equal(t, [2]string{"0xsui", "0xusdc"}, response.TypeArguments)
}

func TestIntegration_QuoteValidation(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	cases := []struct {
		name string
		url  string
		code int
	}{
		{"missing pool", "/v1/quote?direction=baseToQuote&amount=1", http.StatusBadRequest},
		{"bad direction", "/v1/quote?pool_id=0xpool&direction=sideways&amount=1", http.StatusBadRequest},
		{"bad amount", "/v1/quote?pool_id=0xpool&direction=baseToQuote&amount=abc", http.StatusBadRequest},
		{"bad slippage", "/v1/quote?pool_id=0xpool&direction=baseToQuote&amount=1&slippage=150", http.StatusBadRequest},
		{"unknown pool", "/v1/quote?pool_id=0xmissing&direction=baseToQuote&amount=1", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := makeRequest(t, http.MethodGet, testBaseURL+tc.url, tc.code)
			resp.Body.Close()
		})
	}
}

func TestIntegration_RecentSwaps(t *testing.T) {
	redisClient, cleanup := setupIntegrationTest(t)
	defer cleanup()

	ctx := context.Background()

	swapData := `{"digest":"test_digest","pair":"SUI_USDC","asset_in":"0xsui","asset_out":"0xusdc","amount_in":1.0,"amount_out":2.0,"price":2.0,"min_out":1.98,"pool":"0xpool","venue":"DeepBook"}`
	err := redisClient.LPush(ctx, constants.RedisKeyRecentSwaps, swapData).Err()
	require.NoError(t, err)

	resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/swaps/recent?limit=5", http.StatusOK)
	defer resp.Body.Close()

	var swapsResponse struct {
		Items []*models.SwapEvent `json:"items"`
	}
	err = json.NewDecoder(resp.Body).Decode(&swapsResponse)
	require.NoError(t, err)
	require.Len(t, swapsResponse.Items, 1)
	assert.Equal(t, "test_digest", swapsResponse.Items[0].Digest)
	assert.Equal(t, "DeepBook", swapsResponse.Items[0].Venue)

	// Invalid limit is rejected.
	resp = makeRequest(t, http.MethodGet, testBaseURL+"/v1/swaps/recent?limit=500", http.StatusBadRequest)
	resp.Body.Close()
}

func TestIntegration_Prices(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/prices/0xsui", http.StatusOK)
	defer resp.Body.Close()

	var priceResponse server.PriceResponse
	err := json.NewDecoder(resp.Body).Decode(&priceResponse)
	require.NoError(t, err)
	assert.Equal(t, "0xsui", priceResponse.Asset)
	assert.Equal(t, 2.0, priceResponse.Price)

	// Unknown asset has no price.
	resp = makeRequest(t, http.MethodGet, testBaseURL+"/v1/prices/0xunknown", http.StatusNotFound)
	resp.Body.Close()
}

func TestIntegration_Authentication(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	// Test without API key
	req, err := http.NewRequest(http.MethodGet, testBaseURL+"/v1/health", nil)
	require.NoError(t, err)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Test with invalid API key
	req, err = http.NewRequest(http.MethodGet, testBaseURL+"/v1/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", "invalid-key")

	resp, err = client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ErrorHandling(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/nonexistent", http.StatusNotFound)
	defer resp.Body.Close()

	var errorResponse server.ErrorResponse
	err := json.NewDecoder(resp.Body).Decode(&errorResponse)
	require.NoError(t, err)
	assert.Equal(t, "not found", errorResponse.Error)
	assert.Equal(t, http.StatusNotFound, errorResponse.Code)
}

func TestIntegration_ConcurrentRequests(t *testing.T) {
	_, cleanup := setupIntegrationTest(t)
	defer cleanup()

	const numRequests = 50
	const numGoroutines = 10

	results := make(chan error, numRequests)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			for j := 0; j < numRequests/numGoroutines; j++ {
				resp := makeRequest(t, http.MethodGet, testBaseURL+"/v1/health", http.StatusOK)
				resp.Body.Close()
				results <- nil
			}
		}()
	}

	// Collect all results
	for i := 0; i < numRequests; i++ {
		err := <-results
		assert.NoError(t, err)
	}
}
