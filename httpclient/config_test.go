package httpclient

import (
	"strings"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{Retry: &RetryConfig{}}
	cfg.ApplyDefaults()
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.Name != "httpclient" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.MediaType != "text/json" {
		t.Errorf("expected default media type text/json, got %q", cfg.MediaType)
	}
	if !strings.HasPrefix(cfg.UserAgent, "restsense/") {
		t.Errorf("expected default user agent, got %q", cfg.UserAgent)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.RetryIf == nil {
		t.Errorf("retry defaults not applied: %+v", cfg.Retry)
	}
}

func TestConfig_ApplyDefaults_PreservesExisting(t *testing.T) {
	cfg := Config{Timeout: 10 * time.Second, MediaType: "application/json", Name: "billing"}
	cfg.ApplyDefaults()
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.MediaType != "application/json" || cfg.Name != "billing" {
		t.Errorf("existing values overwritten: %+v", cfg)
	}
	if cfg.Retry != nil {
		t.Error("retry should stay disabled")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Timeout: 10 * time.Second}, false},
		{"valid base url", Config{Timeout: time.Second, BaseURL: "https://api.example.com/v1"}, false},
		{"negative timeout", Config{Timeout: -1}, true},
		{"invalid base url", Config{Timeout: time.Second, BaseURL: "not a url"}, true},
		{"tls cert without key", Config{Timeout: time.Second, TLS: &TLSConfig{CertFile: "cert.pem"}}, true},
		{"tls key without cert", Config{Timeout: time.Second, TLS: &TLSConfig{KeyFile: "key.pem"}}, true},
		{"retry jitter out of range", Config{Timeout: time.Second, Retry: &RetryConfig{Jitter: 2}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != 100*time.Millisecond || cfg.MaxBackoff != 10*time.Second {
		t.Errorf("backoff = %v..%v", cfg.InitialBackoff, cfg.MaxBackoff)
	}
	if cfg.RetryIf == nil {
		t.Error("expected RetryIf to be set")
	}
}
