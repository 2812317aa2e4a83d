package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restsense/codec"
	"github.com/kbukum/restsense/logger"
)

func newTestClient(t *testing.T, cfg Config, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/123" {
			t.Errorf("expected /users/123, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "Alice"})
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/users/123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Alice") {
		t.Errorf("response body should contain Alice, got %s", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type header = %q", resp.Headers["Content-Type"])
	}
}

func TestClient_Do_Bodies(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCT   string
		wantBody string
	}{
		{"json", map[string]string{"name": "Bob"}, "application/json", `{"name":"Bob"}`},
		{"string", "hello world", "text/plain; charset=utf-8", "hello world"},
		{"bytes", []byte("raw bytes"), "", "raw bytes"},
		{"reader", strings.NewReader("streamed"), "", "streamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != tt.wantCT {
					t.Errorf("Content-Type = %q, want %q", ct, tt.wantCT)
				}
				data, _ := io.ReadAll(r.Body)
				if strings.TrimSpace(string(data)) != tt.wantBody {
					t.Errorf("body = %q, want %q", data, tt.wantBody)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer srv.Close()

			c := newTestClient(t, Config{BaseURL: srv.URL})
			resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: tt.body})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusCreated {
				t.Errorf("expected 201, got %d", resp.StatusCode)
			}
		})
	}
}

func TestClient_Do_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		if got := r.FormValue("title"); got != "report" {
			t.Errorf("title = %q", got)
		}
		f, hdr, err := r.FormFile("doc")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "r.txt" || string(data) != "content" {
			t.Errorf("file = %s %q", hdr.Filename, data)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Body: &codec.MultipartBody{
			Fields: map[string]string{"title": "report"},
			Files:  []codec.FileField{{FieldName: "doc", FileName: "r.txt", Data: []byte("content")}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_HeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Default"); got != "value" {
			t.Errorf("X-Default = %q", got)
		}
		if got := r.Header.Get("X-Override"); got != "request" {
			t.Errorf("X-Override = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "restsense-test" {
			t.Errorf("User-Agent = %q", got)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, Config{
		BaseURL:   srv.URL + "/",
		UserAgent: "restsense-test",
		Headers:   map[string]string{"X-Default": "value", "X-Override": "client"},
	})

	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/items",
		Query:   map[string]string{"page": "2"},
		Headers: map[string]string{"X-Override": "request"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_RequestID(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("X-Request-ID"))
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL, RequestIDHeader: "X-Request-ID"})

	ctx := logger.ContextWithRequestID(context.Background(), "req-42")
	if _, err := c.Do(ctx, Request{Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Do(context.Background(), Request{Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[0] != "req-42" {
		t.Errorf("propagated id = %q, want req-42", got[0])
	}
	if len(got[1]) != 36 {
		t.Errorf("generated id = %q, want a UUID", got[1])
	}
}

func TestClient_Do_Auth_PerRequestOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer override-token" {
			t.Errorf("expected override-token, got %q", got)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL, Auth: BearerAuth("default-token")})

	_, err := c.Do(context.Background(), Request{Path: "/", Auth: BearerAuth("override-token")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClient_Do_AuthFailure(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL, Auth: JWTAuth(JWTConfig{})})

	_, err := c.Do(context.Background(), Request{Path: "/"})
	if !IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
	if called.Load() {
		t.Error("request should not be sent when auth fails")
	}
}

func TestClient_Do_ErrorClassification(t *testing.T) {
	tests := []struct {
		code     int
		checker  func(error) bool
		sentinel error
	}{
		{401, IsAuth, ErrUnauthorized},
		{403, IsAuth, ErrForbidden},
		{404, IsNotFound, ErrNotFound},
		{409, IsValidation, ErrConflict},
		{429, IsRateLimit, ErrTooManyRequests},
		{500, IsServerError, ErrInternalServerError},
		{503, IsServerError, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Trace", "abc")
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(`{"error":"test"}`))
			}))
			defer srv.Close()

			c := newTestClient(t, Config{BaseURL: srv.URL})

			resp, err := c.Do(context.Background(), Request{Path: "/"})
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.checker(err) {
				t.Errorf("error classification failed for HTTP %d: %v", tt.code, err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(err, %v) = false", tt.sentinel)
			}
			if resp == nil || resp.StatusCode != tt.code {
				t.Fatalf("expected response with status %d even on error", tt.code)
			}
			var e *Error
			if !errors.As(err, &e) || e.Headers["X-Trace"] != "abc" {
				t.Errorf("error should carry response headers: %+v", e)
			}
		})
	}
}

func TestClient_Do_ProblemDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"One or more validation errors occurred.","status":400,"errors":{"name":["is required"]}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: map[string]string{}})
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if e.Problem == nil {
		t.Fatal("expected parsed problem details")
	}
	if msgs := e.ValidationErrors()["name"]; len(msgs) != 1 || msgs[0] != "is required" {
		t.Errorf("ValidationErrors() = %v", e.ValidationErrors())
	}
	if !strings.Contains(e.Error(), "name: is required") {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestClient_Do_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := c.Do(ctx, Request{Path: "/"})
	if !IsCanceled(err) {
		t.Errorf("expected canceled error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false for %v", err)
	}
	if IsRetryable(err) {
		t.Error("cancellation must not be retryable")
	}
}

func TestClient_Do_AlreadyCanceled(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, Request{Path: "/"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called.Load() {
		t.Error("no request should be sent for a cancelled context")
	}
}

func TestClient_Do_CanceledWithCause(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	shutdown := errors.New("shutting down")
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(shutdown)

	_, err := c.Do(ctx, Request{Path: "/"})
	if !IsCanceled(err) {
		t.Errorf("expected canceled error, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false for %v", err)
	}
	if !errors.Is(err, shutdown) {
		t.Errorf("cause missing from %v", err)
	}
}

func TestClient_Do_Deadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Do(ctx, Request{Path: "/"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("errors.Is(err, context.DeadlineExceeded) = false for %v", err)
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, Config{BaseURL: url})
	_, err := c.Do(context.Background(), Request{Path: "/"})
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
	if !IsRetryable(err) {
		t.Error("connection errors should be retryable")
	}
}

func TestClient_Do_SerializationError(t *testing.T) {
	c := newTestClient(t, Config{BaseURL: "http://localhost"})
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: map[string]any{"ch": make(chan int)}})
	if !IsSerialization(err) {
		t.Errorf("expected serialization error, got %v", err)
	}
}

func TestClient_Do_FullURL_IgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: "http://should-not-be-used.invalid"})

	resp, err := c.Do(context.Background(), Request{Path: srv.URL + "/direct"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestClient_Do_Retry(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("attempt body = %q, want payload", body)
		}
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := newTestClient(t, Config{
		BaseURL: srv.URL,
		Retry:   &RetryConfig{MaxAttempts: 3, InitialBackoff: 5 * time.Millisecond},
	})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: "payload"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestClient_Do_RetryStopsOnNonRetryable(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{
		BaseURL: srv.URL,
		Retry:   &RetryConfig{MaxAttempts: 5, InitialBackoff: time.Millisecond},
	})

	resp, err := c.Do(context.Background(), Request{Path: "/"})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Error("expected the failed response to be returned")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 attempt, got %d", got)
	}
}

func TestClient_Do_Tracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer func() { _ = tp.Shutdown(context.Background()) }()

	var traceparent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})
	_, _ = c.Do(context.Background(), Request{Path: "/missing"})

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "HTTP GET" {
		t.Errorf("span name = %q", span.Name())
	}
	if span.SpanKind() != trace.SpanKindClient {
		t.Errorf("span kind = %v", span.SpanKind())
	}
	if traceparent == "" || !strings.Contains(traceparent, span.SpanContext().TraceID().String()) {
		t.Errorf("traceparent %q does not carry trace %s", traceparent, span.SpanContext().TraceID())
	}
}

func TestClient_DoStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprint(w, "{\"n\":1}\n{\"n\":2}\n")
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL, Timeout: time.Millisecond})

	stream, err := c.DoStream(context.Background(), Request{Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(data) != "{\"n\":1}\n{\"n\":2}\n" {
		t.Errorf("stream body = %q", data)
	}
}

func TestClient_DoStream_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, Config{BaseURL: srv.URL})

	_, err := c.DoStream(context.Background(), Request{Path: "/"})
	if !IsAuth(err) {
		t.Errorf("expected auth error, got %v", err)
	}
	var e *Error
	if errors.As(err, &e) && !strings.Contains(string(e.Body), "unauthorized") {
		t.Errorf("error body = %q", e.Body)
	}
}

func TestClient_WithTransport(t *testing.T) {
	var used atomic.Bool
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		used.Store(true)
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       io.NopCloser(strings.NewReader("stub")),
			Request:    r,
		}, nil
	})

	c := newTestClient(t, Config{BaseURL: "http://api.test"}, WithTransport(rt))
	resp, err := c.Do(context.Background(), Request{Path: "/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !used.Load() || string(resp.Body) != "stub" {
		t.Errorf("custom transport not used: %q", resp.Body)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestResponse_Helpers(t *testing.T) {
	r := &Response{StatusCode: 200}
	if !r.IsSuccess() || r.IsError() {
		t.Error("200 should be success")
	}
	r2 := &Response{StatusCode: 500}
	if r2.IsSuccess() || !r2.IsError() {
		t.Error("500 should be error")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
