package httpclient

import (
	"net/http"

	"github.com/kbukum/restsense/logger"
	"github.com/kbukum/restsense/observability"
)

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the logger used for request logging.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithTransport replaces the HTTP transport. TLS settings from the config
// are not applied to a custom transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.transport = rt
		}
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
