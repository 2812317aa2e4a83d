package httpclient

import (
	"context"
	"crypto/tls"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestTLSConfig_Build(t *testing.T) {
	var nilCfg *TLSConfig
	if cfg, err := nilCfg.Build(); cfg != nil || err != nil {
		t.Errorf("nil config: got %v, %v", cfg, err)
	}
	if (&TLSConfig{}).IsEnabled() {
		t.Error("empty config should be disabled")
	}

	cfg, err := (&TLSConfig{ServerName: "api.internal"}).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS12 || cfg.ServerName != "api.internal" {
		t.Errorf("unexpected config: min=%x server=%q", cfg.MinVersion, cfg.ServerName)
	}
}

func TestTLSConfig_Build_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(garbage, []byte("not a cert"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		cfg  TLSConfig
	}{
		{"missing ca file", TLSConfig{CAFile: filepath.Join(dir, "absent.pem")}},
		{"ca without certs", TLSConfig{CAFile: garbage}},
		{"bad key pair", TLSConfig{CertFile: garbage, KeyFile: garbage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestClient_TLS_CustomCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer srv.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	if err := os.WriteFile(caFile, pemBytes, 0o600); err != nil {
		t.Fatal(err)
	}

	// Without the CA the handshake fails.
	plain := newTestClient(t, Config{BaseURL: srv.URL})
	if _, err := plain.Do(context.Background(), Request{Path: "/"}); !IsConnection(err) {
		t.Errorf("expected connection error without CA, got %v", err)
	}

	c := newTestClient(t, Config{BaseURL: srv.URL, TLS: &TLSConfig{CAFile: caFile}})
	resp, err := c.Do(context.Background(), Request{Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "secure" {
		t.Errorf("body = %q", resp.Body)
	}
}
