package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "solharvest"

var ErrBranchNotFound = errors.New("default branch not found")

// Client talks to the repository hosting API. One instance is shared
// across contests so throttling applies to the whole run.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	attempts   int
	backoff    time.Duration
}

type ClientConfig struct {
	// Token is the bearer token for the hosting API. Required.
	Token string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
	// Timeout bounds each individual call. Defaults to 30s.
	Timeout time.Duration
	// RetryAttempts bounds retries of transient failures. Defaults to 3.
	RetryAttempts int
	// RetryBackoff is the first retry delay; it doubles per attempt.
	// Defaults to 1s.
	RetryBackoff time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.github.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		attempts:   cfg.RetryAttempts,
		backoff:    cfg.RetryBackoff,
	}
}

// getJSON fetches url and decodes the response into out. Transient
// failures (network errors, 5xx, API throttling on 403/429) are
// retried with exponential backoff up to the configured attempt count;
// other non-success statuses fail immediately.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	var lastErr error
	delay := c.backoff
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request for %s: %w", url, err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch %s: %w", url, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response from %s: %w", url, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to decode response from %s: %w", url, err)
			}
			return nil
		case resp.StatusCode == http.StatusForbidden ||
			resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= 500:
			lastErr = fmt.Errorf("hosting API returned %d for %s", resp.StatusCode, url)
		default:
			return fmt.Errorf("hosting API returned %d for %s", resp.StatusCode, url)
		}
	}
	return lastErr
}
