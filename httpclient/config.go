package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restsense/validation"
	"github.com/kbukum/restsense/version"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultName      = "httpclient"
	defaultMediaType = "text/json"
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the default request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// MediaType is the default body media type of the rest facade.
	// Defaults to "text/json".
	MediaType string `yaml:"media_type" mapstructure:"media_type"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RequestIDHeader, when set, carries a request id on every request: the
	// id bound to the context, or a new UUID.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header"`

	// UserAgent is sent when the request does not set one. Defaults to
	// "restsense/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Auth configures default authentication applied to all requests.
	// Individual requests can override this.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MediaType == "" {
		c.MediaType = defaultMediaType
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent("restsense")
	}
	if c.Retry != nil {
		c.Retry.ApplyDefaults()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("httpclient: invalid config: %w", err)
	}
	return nil
}
