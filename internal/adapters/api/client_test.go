package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/armor-tracker/internal/adapters/api"
	"github.com/andrescamacho/armor-tracker/internal/domain/shared"
)

func newClient(clock shared.Clock) *api.DatasetClient {
	return api.NewDatasetClientWithOptions(api.ClientOptions{
		Timeout:     time.Second,
		Requests:    100,
		Burst:       100,
		MaxRetries:  2,
		BackoffBase: 10 * time.Millisecond,
		Clock:       clock,
	})
}

func TestFetchJSON_Success(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"schemaVersion":1}`))
	}))
	defer server.Close()

	// Act
	body, err := newClient(shared.NewMockClock(time.Time{})).FetchJSON(context.Background(), server.URL)

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":1}`, string(body))
}

func TestFetchJSON_RetriesServerErrors(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()
	clock := shared.NewMockClock(time.Time{})

	// Act
	body, err := newClient(clock).FetchJSON(context.Background(), server.URL)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, clock.Slept, 2)
}

func TestFetchJSON_HonoursRetryAfter(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	clock := shared.NewMockClock(time.Time{})

	_, err := newClient(clock).FetchJSON(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{3 * time.Second}, clock.Slept)
}

func TestFetchJSON_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(shared.NewMockClock(time.Time{})).FetchJSON(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchJSON_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newClient(shared.NewMockClock(time.Time{})).FetchJSON(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchJSON_RejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	_, err := newClient(shared.NewMockClock(time.Time{})).FetchJSON(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

// stalledClock cancels the fetch as soon as a backoff wait starts and never fires.
type stalledClock struct {
	*shared.MockClock
	cancel context.CancelFunc
	waits  []time.Duration
}

func (c *stalledClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	c.cancel()
	return make(chan time.Time)
}

func TestFetchJSON_CancelledDuringBackoff(t *testing.T) {
	// Arrange
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "3600")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock := &stalledClock{MockClock: shared.NewMockClock(time.Time{}), cancel: cancel}

	// Act
	done := make(chan error, 1)
	go func() {
		_, err := newClient(clock).FetchJSON(ctx, server.URL)
		done <- err
	}()

	// Assert
	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, []time.Duration{time.Hour}, clock.waits)
		assert.Equal(t, int32(1), calls.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("fetch kept waiting after its context was cancelled")
	}
}
