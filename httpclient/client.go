package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restsense/codec"
	"github.com/kbukum/restsense/logger"
	"github.com/kbukum/restsense/observability"
)

const tracerName = "github.com/kbukum/restsense/httpclient"

// Client is a configurable HTTP client with built-in auth, TLS, retry,
// tracing and request logging.
type Client struct {
	httpClient   *http.Client
	streamClient *http.Client
	transport    http.RoundTripper
	config       Config
	log          *logger.Logger
	metrics      *observability.Metrics
	tracer       trace.Tracer
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		log:    logger.Get(cfg.Name),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
		c.transport = transport
	}

	c.httpClient = &http.Client{Transport: c.transport, Timeout: cfg.Timeout}
	// Streams are bounded by the caller's context only.
	c.streamClient = &http.Client{Transport: c.transport}
	return c, nil
}

// Config returns the effective configuration.
func (c *Client) Config() Config {
	return c.config
}

// Do executes an HTTP request and returns the complete response. A non-2xx
// response is returned together with its classified *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	if c.config.Retry != nil {
		return retry(ctx, *c.config.Retry, func(attempt int) (*Response, error) {
			return c.doOnce(ctx, req, body, attempt)
		})
	}
	return c.doOnce(ctx, req, body, 1)
}

// DoStream executes an HTTP request and returns a streaming response.
// The caller must close the returned StreamResponse when done.
// Retry and the client timeout are not applied to streaming requests.
func (c *Client) DoStream(ctx context.Context, req Request) (*StreamResponse, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	resp, finish, err := c.send(ctx, c.streamClient, req, body, 1)
	if err != nil {
		finish(0, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		classErr := ClassifyStatusCode(resp.StatusCode, data)
		classErr.Headers = flattenHeaders(resp.Header)
		finish(resp.StatusCode, classErr)
		return nil, classErr
	}

	finish(resp.StatusCode, nil)
	return &StreamResponse{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       resp.Body,
	}, nil
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// doOnce sends one attempt and reads the whole response.
func (c *Client) doOnce(ctx context.Context, req Request, body *payload, attempt int) (*Response, error) {
	resp, finish, err := c.send(ctx, c.httpClient, req, body, attempt)
	if err != nil {
		finish(0, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		var readErr *Error
		if ctx.Err() != nil {
			readErr = contextError(ctx, err)
		} else {
			readErr = NewConnectionError(fmt.Errorf("read response body: %w", err))
		}
		finish(resp.StatusCode, readErr)
		return nil, readErr
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       data,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, data); classErr != nil {
		classErr.Headers = result.Headers
		finish(resp.StatusCode, classErr)
		return result, classErr
	}

	finish(resp.StatusCode, nil)
	return result, nil
}

// send builds the request, opens a client span and performs the round trip.
// finish must be called exactly once with the outcome.
func (c *Client) send(ctx context.Context, hc *http.Client, req Request, body *payload, attempt int) (*http.Response, func(int, error), error) {
	start := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.Int("http.request.resend_count", attempt-1),
		),
	)
	if c.metrics != nil {
		c.metrics.RecordRequestStart(ctx)
	}

	var url string
	finish := func(status int, err error) {
		duration := time.Since(start)
		fields := logger.Fields(
			logger.FieldMethod, method,
			logger.FieldURL, url,
			logger.FieldStatus, status,
			logger.FieldAttempt, attempt,
		)
		fields = logger.MergeWithDuration(fields, duration)

		outcome := "ok"
		if status > 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
		if err != nil {
			outcome = errorCode(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
			fields[logger.FieldErrorClass] = outcome
			fields = logger.MergeWithError(fields, err)
			c.log.WithContext(ctx).Warn("http request failed", fields)
			if c.metrics != nil {
				c.metrics.RecordError(ctx, outcome, c.config.Name)
			}
		} else {
			c.log.WithContext(ctx).Debug("http request completed", fields)
		}
		span.End()
		if c.metrics != nil {
			c.metrics.RecordRequestEnd(ctx, c.config.Name, method, outcome, duration)
		}
	}

	if ctx.Err() != nil {
		return nil, finish, contextError(ctx, nil)
	}

	httpReq, err := c.buildRequest(ctx, method, req, body)
	if err != nil {
		return nil, finish, err
	}
	url = httpReq.URL.Redacted()
	span.SetAttributes(attribute.String("url.full", url))
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, finish, transportError(ctx, err)
	}
	return resp, finish, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, method string, req Request, body *payload) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body.data)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if body != nil && httpReq.Header.Get("Content-Type") == "" && body.contentType != "" {
		httpReq.Header.Set("Content-Type", body.contentType)
	}
	if c.config.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if h := c.config.RequestIDHeader; h != "" && httpReq.Header.Get(h) == "" {
		id := logger.RequestIDFromContext(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		httpReq.Header.Set(h, id)
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	if err := auth.apply(httpReq); err != nil {
		return nil, &Error{Code: ErrCodeAuth, Message: err.Error(), Err: err}
	}
	return httpReq, nil
}

// payload is an encoded request body, replayable across retries.
type payload struct {
	data        []byte
	contentType string
}

// encodeBody converts a body value into bytes and a default content type.
func encodeBody(body any) (*payload, error) {
	if body == nil {
		return nil, nil
	}
	switch v := body.(type) {
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, NewSerializationError(fmt.Errorf("read body: %w", err))
		}
		return &payload{data: data}, nil
	case []byte:
		return &payload{data: v}, nil
	case string:
		return &payload{data: []byte(v), contentType: "text/plain; charset=utf-8"}, nil
	case *codec.MultipartBody:
		r, ct, err := v.Encode()
		if err != nil {
			return nil, NewSerializationError(fmt.Errorf("encode multipart body: %w", err))
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, NewSerializationError(err)
		}
		return &payload{data: data, contentType: ct}, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, NewSerializationError(fmt.Errorf("encode body: %w", err))
		}
		return &payload{data: data, contentType: "application/json"}, nil
	}
}

func errorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	return "unknown"
}
