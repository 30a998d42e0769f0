package ai

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"resumelens/internal/errors"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"plain error", fmt.Errorf("bad request"), false},
		{"network error", &net.OpError{Op: "dial", Err: fmt.Errorf("connection refused")}, true},
		{"google 429", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"google 400", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"openai 503", &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}, true},
		{"openai 401", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}, false},
		{"wrapped openai 500", fmt.Errorf("call: %w", &openai.APIError{HTTPStatusCode: 500}), true},
		{"request error 502", &openai.RequestError{HTTPStatusCode: http.StatusBadGateway}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.expected {
				t.Errorf("isRetryableError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBackoffIsCapped(t *testing.T) {
	r := newRetrier(10, errors.NewNopLogger())
	if d := r.backoff(1); d < time.Second || d > 1100*time.Millisecond {
		t.Errorf("First backoff out of range: %v", d)
	}
	if d := r.backoff(10); d != maxBackoff {
		t.Errorf("Expected backoff capped at %v, got %v", maxBackoff, d)
	}
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	r := newRetrier(3, errors.NewNopLogger())
	r.baseDelay = time.Millisecond

	calls := 0
	_, err := executeWithRetry(context.Background(), r, "test", func() (string, error) {
		calls++
		return "", &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Permanent errors should not be retried, got %d calls", calls)
	}
}

func TestExecuteWithRetryHonoursContext(t *testing.T) {
	r := newRetrier(3, errors.NewNopLogger())
	r.baseDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := executeWithRetry(ctx, r, "test", func() (int, error) {
		calls++
		cancel()
		return 0, &googleapi.Error{Code: http.StatusServiceUnavailable}
	})
	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected a single attempt, got %d", calls)
	}
}
