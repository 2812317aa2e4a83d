package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/kbukum/restsense/observability"
)

// HealthChecker reports the upstream as up when GET path answers 2xx,
// degraded on 429 and down otherwise. It plugs into the server's /health
// endpoint.
func (c *Client) HealthChecker(path string) observability.HealthChecker {
	return &upstreamCheck{client: c, path: path}
}

type upstreamCheck struct {
	client *Client
	path   string
}

func (u *upstreamCheck) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{
		Name:    u.client.config.Name,
		Details: map[string]string{"url": u.client.config.BaseURL + u.path},
	}

	start := time.Now()
	resp, err := u.client.Do(ctx, Request{Method: http.MethodGet, Path: u.path})
	h.Details["latency"] = time.Since(start).Round(time.Millisecond).String()
	if resp != nil {
		h.Details["status_code"] = strconv.Itoa(resp.StatusCode)
	}

	switch {
	case err == nil:
		h.Status = observability.HealthStatusUp
	case IsRateLimit(err):
		h.Status = observability.HealthStatusDegraded
		h.Message = err.Error()
	default:
		h.Status = observability.HealthStatusDown
		h.Message = err.Error()
	}
	return h
}
