package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxRetries  = 2
	defaultBackoffBase = 500 * time.Millisecond

	// Dataset documents are small; anything larger is not a dataset.
	maxResponseBytes = 8 << 20
)

// DatasetClient fetches dataset documents over HTTP
type DatasetClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
}

// ClientOptions configures a DatasetClient. Zero durations and rates fall back
// to defaults; MaxRetries is taken as given.
type ClientOptions struct {
	Timeout     time.Duration
	Requests    int
	Burst       int
	MaxRetries  int
	BackoffBase time.Duration
	Clock       shared.Clock
}

// NewDatasetClientWithOptions creates a client with custom configuration
// If opts.Clock is nil, uses RealClock
func NewDatasetClientWithOptions(opts ClientOptions) *DatasetClient {
	if opts.Clock == nil {
		opts.Clock = shared.NewRealClock()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Requests <= 0 {
		opts.Requests = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = defaultBackoffBase
	}
	return &DatasetClient{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(opts.Requests), opts.Burst),
		maxRetries:  opts.MaxRetries,
		backoffBase: opts.BackoffBase,
		clock:       opts.Clock,
	}
}

// FetchJSON downloads url and returns its body when it is well-formed JSON.
// Caches are bypassed so a republished dataset is picked up immediately.
func (c *DatasetClient) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, retryAfter, err := c.fetchOnce(ctx, url)
		if err == nil {
			if !json.Valid(body) {
				return nil, fmt.Errorf("response from %s is not valid JSON", url)
			}
			return body, nil
		}

		if _, ok := err.(*retryableError); !ok {
			return nil, err
		}
		lastErr = err

		// Last attempt - don't sleep
		if attempt >= c.maxRetries {
			break
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		}

		backoffDelay := addJitter(c.backoffBase * time.Duration(1<<attempt))
		if retryAfter > 0 {
			backoffDelay = retryAfter
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-c.clock.After(backoffDelay):
		}
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *DatasetClient) fetchOnce(ctx context.Context, url string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &retryableError{message: fmt.Errorf("network error: %w", err).Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, &retryableError{message: fmt.Errorf("failed to read response: %w", err).Error()}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
		return nil, retryAfter, &retryableError{message: "rate limited (429)"}
	case resp.StatusCode >= 500:
		return nil, 0, &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, 0, fmt.Errorf("dataset request failed (status %d)", resp.StatusCode)
	}
	return respBody, 0, nil
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message string
}

func (e *retryableError) Error() string {
	return e.message
}

// addJitter spreads retries by up to 10% of the delay
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d)/10+1))
}
