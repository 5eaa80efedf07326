package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/macrolens/mealscore/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultRequestsPerHour = 1000
	defaultBurst           = 10
	maxAttempts            = 3
	maxErrorBodyBytes      = 1024
)

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new USDA API client limited to 1000 requests per hour
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(perHour(defaultRequestsPerHour), defaultBurst),
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SetRateLimit replaces the limiter with one allowing requestsPerHour.
// Non-positive values keep the current limiter.
func (c *Client) SetRateLimit(requestsPerHour int) {
	if requestsPerHour <= 0 {
		return
	}
	c.rateLimiter = rate.NewLimiter(perHour(requestsPerHour), defaultBurst)
}

func perHour(n int) rate.Limit {
	return rate.Limit(float64(n) / 3600.0)
}

func (c *Client) debugLog(format string, args ...any) {
	if c.debug {
		log.Printf("[USDA] "+format, args...)
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return 500 * time.Millisecond * time.Duration(1<<(attempt-1))
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

// retryable reports whether a status code is worth another attempt
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MealScore/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}

	return resp, nil
}

// getWithRetry fetches reqURL, retrying transport failures, 429 and 5xx with
// exponential backoff. It returns the body of the first 200 response.
func (c *Client) getWithRetry(ctx context.Context, reqURL string) ([]byte, error) {
	if _, err := url.Parse(reqURL); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[USDA] Rate limiter error: %v", err)
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("[USDA] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := readLimitedBody(resp.Body, maxErrorBodyBytes)
			resp.Body.Close()
			log.Printf("[USDA] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))

			if resp.StatusCode == http.StatusNotFound {
				return nil, domain.ErrProductNotFound
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrUSDAAPIFailure, resp.StatusCode)
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrUSDAAPIFailure, err)
			continue
		}

		c.debugLog("GET %s -> %d bytes (attempt %d)", redactKey(reqURL), len(body), attempt)
		return body, nil
	}

	return nil, lastErr
}

// SearchFoods searches for foods in the USDA database
func (c *Client) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	log.Printf("[USDA] SearchFoods called with query: %q", query)

	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("dataType", "Foundation,SR Legacy,Survey (FNDDS)")
	params.Add("pageSize", "10")

	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		log.Printf("[USDA] Search failed for query %q: %v", query, err)
		return nil, err
	}

	var searchResp domain.USDASearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		log.Printf("[USDA] JSON decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(searchResp.Foods) == 0 {
		log.Printf("[USDA] No foods found for query: %q", query)
		return nil, domain.ErrProductNotFound
	}

	log.Printf("[USDA] Found %d foods for query: %q", len(searchResp.Foods), query)
	return &searchResp, nil
}

// GetFoodDetails retrieves detailed nutrition information for a specific food by FDC ID
func (c *Client) GetFoodDetails(ctx context.Context, fdcID int) (*domain.USDAFood, error) {
	if fdcID <= 0 {
		return nil, fmt.Errorf("%w: fdc id must be positive, got %d", domain.ErrInvalidInput, fdcID)
	}

	params := url.Values{}
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s/v1/food/%d?%s", c.baseURL, fdcID, params.Encode())

	body, err := c.getWithRetry(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var food domain.USDAFood
	if err := json.Unmarshal(body, &food); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &food, nil
}

// redactKey strips the api_key parameter from a URL before logging
func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
