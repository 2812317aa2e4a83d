package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/restsense/observability"
)

func TestHealthChecker(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   observability.HealthStatus
	}{
		{"up", http.StatusOK, observability.HealthStatusUp},
		{"rate limited", http.StatusTooManyRequests, observability.HealthStatusDegraded},
		{"down", http.StatusServiceUnavailable, observability.HealthStatusDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/ping" {
					t.Errorf("path = %q", r.URL.Path)
				}
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			c := newTestClient(t, Config{Name: "billing", BaseURL: srv.URL})
			h := c.HealthChecker("/ping").CheckHealth(context.Background())

			if h.Status != tc.want {
				t.Errorf("status = %q, want %q", h.Status, tc.want)
			}
			if h.Name != "billing" {
				t.Errorf("name = %q", h.Name)
			}
			if h.Details["url"] != srv.URL+"/ping" {
				t.Errorf("url = %q", h.Details["url"])
			}
			if tc.want != observability.HealthStatusUp && h.Message == "" {
				t.Error("expected a message for a failing upstream")
			}
		})
	}
}

func TestHealthChecker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, Config{BaseURL: url})
	h := c.HealthChecker("/").CheckHealth(context.Background())
	if h.Status != observability.HealthStatusDown {
		t.Errorf("status = %q", h.Status)
	}
	if _, ok := h.Details["status_code"]; ok {
		t.Error("no status code expected without a response")
	}
}
