package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := retry(ctx, RetryConfig{MaxAttempts: 5, InitialBackoff: time.Hour}, func(int) (int, error) {
		calls++
		cancel()
		return 0, NewConnectionError(errors.New("refused"))
	})
	if !IsCanceled(err) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_OnRetry(t *testing.T) {
	var seen []int
	cfg := RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			seen = append(seen, attempt)
		},
	}
	got, err := retry(context.Background(), cfg, func(attempt int) (string, error) {
		if attempt < 3 {
			return "", NewTimeoutError(errors.New("slow"))
		}
		return "done", nil
	})
	if err != nil || got != "done" {
		t.Fatalf("retry() = %q, %v", got, err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("OnRetry attempts = %v", seen)
	}
}

func TestRetry_ExhaustedReturnsLastResult(t *testing.T) {
	got, err := retry(context.Background(), RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond}, func(attempt int) (int, error) {
		return attempt, ClassifyStatusCode(http.StatusBadGateway, nil)
	})
	if !errors.Is(err, ErrBadGateway) {
		t.Errorf("err = %v", err)
	}
	if got != 2 {
		t.Errorf("result = %d, want last attempt", got)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, BackoffFactor: 2}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{5, time.Second},
	}
	for _, tt := range tests {
		if got := calculateBackoff(tt.attempt, cfg); got != tt.want {
			t.Errorf("calculateBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	cfg.Jitter = 0.5
	for i := 0; i < 20; i++ {
		got := calculateBackoff(2, cfg)
		if got < 100*time.Millisecond || got > 300*time.Millisecond {
			t.Fatalf("jittered backoff %v out of range", got)
		}
	}
}

func TestClient_Do_RetryAfter(t *testing.T) {
	var attempts int32
	var first time.Time
	var gap time.Duration
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			first = time.Now()
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		gap = time.Since(first)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{
		BaseURL: srv.URL,
		Retry:   &RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: 200 * time.Millisecond},
	})

	if _, err := c.Do(context.Background(), Request{Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gap < 150*time.Millisecond {
		t.Errorf("retry came after %v, want Retry-After capped at MaxBackoff", gap)
	}
	if gap > 900*time.Millisecond {
		t.Errorf("retry came after %v, Retry-After should be capped", gap)
	}
}
