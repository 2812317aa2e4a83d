package rest

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/kbukum/restsense/codec"
	"github.com/kbukum/restsense/httpclient"
	"github.com/kbukum/restsense/validation"
)

// Client is a typed REST client that wraps the base HTTP client. Request
// bodies are serialized for the configured media type and responses are
// decoded into the caller's type.
type Client struct {
	http      *httpclient.Client
	mediaType string
}

// New creates a new REST client from the given config.
func New(cfg httpclient.Config, opts ...httpclient.Option) (*Client, error) {
	c, err := httpclient.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return NewFromClient(c), nil
}

// NewFromClient creates a REST client from an existing HTTP client.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c, mediaType: c.Config().MediaType}
}

// HTTP returns the underlying HTTP client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// MediaType returns the default body media type.
func (c *Client) MediaType() string {
	return c.mediaType
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.Close()
}

// RequestOption configures a single REST request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	req            httpclient.Request
	mediaType      string
	ignoreDefaults bool
	serializer     codec.Serializer
	deserializer   codec.Deserializer
	validate       bool
}

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.req.Query == nil {
			o.req.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			o.req.Query[k] = v
		}
	}
}

// WithHeaders adds headers to the request. Names are canonicalized, so
// "content-type" overrides the Content-Type derived from the media type.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range headers {
			o.req.Headers[textproto.CanonicalMIMEHeaderKey(k)] = v
		}
	}
}

// WithAuth overrides authentication for the request.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(o *requestOptions) {
		o.req.Auth = auth
	}
}

// WithMediaType sets the media type the content is serialized as. It is
// sent as "<mediaType>; charset=utf-8".
func WithMediaType(mediaType string) RequestOption {
	return func(o *requestOptions) {
		o.mediaType = mediaType
	}
}

// WithIgnoreDefaultValues drops zero-valued fields from JSON content.
// Fields tagged `restful:"keep"` are always written.
func WithIgnoreDefaultValues() RequestOption {
	return func(o *requestOptions) {
		o.ignoreDefaults = true
	}
}

// WithSerializer replaces the media type's serializer for the content.
func WithSerializer(s codec.Serializer) RequestOption {
	return func(o *requestOptions) {
		o.serializer = s
	}
}

// WithDeserializer replaces the deserializer for the response body.
func WithDeserializer(d codec.Deserializer) RequestOption {
	return func(o *requestOptions) {
		o.deserializer = d
	}
}

// WithValidation validates the content's `validate` tags before sending.
// Invalid content is reported as a validation error and nothing is sent.
func WithValidation() RequestOption {
	return func(o *requestOptions) {
		o.validate = true
	}
}

func (c *Client) options(method, path string, opts []RequestOption) *requestOptions {
	o := &requestOptions{
		req: httpclient.Request{
			Method:  method,
			Path:    path,
			Headers: make(map[string]string),
		},
		mediaType: c.mediaType,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// check validates content when WithValidation is set.
func (o *requestOptions) check(content any) error {
	if !o.validate {
		return nil
	}
	if err := validation.Validate(content); err != nil {
		return &httpclient.Error{Code: httpclient.ErrCodeValidation, Message: err.Error(), Err: err}
	}
	return nil
}

// setContent validates and serializes content into the request body.
func (o *requestOptions) setContent(content any) error {
	if err := o.check(content); err != nil {
		return err
	}

	s := o.serializer
	if s == nil {
		s = codec.ForMediaType(o.mediaType, o.ignoreDefaults)
	}
	data, err := s.Serialize(content)
	if err != nil {
		return httpclient.NewSerializationError(fmt.Errorf("httpclient/rest: serialize content: %w", err))
	}

	o.req.Body = data
	if _, ok := o.req.Headers["Content-Type"]; !ok {
		o.req.Headers["Content-Type"] = contentType(o.mediaType)
	}
	return nil
}

// contentType appends a utf-8 charset unless the media type names one.
func contentType(mediaType string) string {
	if _, params, err := mime.ParseMediaType(mediaType); err == nil {
		if _, ok := params["charset"]; ok {
			return mediaType
		}
	}
	return mediaType + "; charset=utf-8"
}

// decode converts a response body into T. An empty body yields the zero
// value, and a string T receives the raw body. The codec follows the
// response Content-Type, falling back to the request media type.
func decode[T any](o *requestOptions, resp *httpclient.Response) (T, error) {
	var v T
	if resp == nil || len(resp.Body) == 0 {
		return v, nil
	}
	if s, ok := any(&v).(*string); ok {
		*s = string(resp.Body)
		return v, nil
	}

	d := o.deserializer
	if d == nil {
		// Servers often label bodies text/plain regardless of format.
		mt := resp.Headers["Content-Type"]
		if mt == "" || strings.HasPrefix(mt, "text/plain") {
			mt = o.mediaType
		}
		d = codec.ForMediaType(mt, false)
	}
	if err := d.Deserialize(resp.Body, &v); err != nil {
		return v, httpclient.NewSerializationError(fmt.Errorf("httpclient/rest: decode response: %w", err))
	}
	return v, nil
}

// Response wraps a typed REST response.
type Response[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
}

// Get performs a GET request and decodes the response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, false, opts...)
}

// Post performs a POST request with a serialized body and decodes the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, true, opts...)
}

// Put performs a PUT request with a serialized body and decodes the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPut, path, body, true, opts...)
}

// Patch performs a PATCH request with a serialized body and decodes the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodPatch, path, body, true, opts...)
}

// Delete performs a DELETE request and decodes the response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Response[T], error) {
	return do[T](ctx, c, http.MethodDelete, path, nil, false, opts...)
}

// do executes a request and decodes the response. Error responses whose
// body decodes into T are returned alongside the error.
func do[T any](ctx context.Context, c *Client, method, path string, body any, hasBody bool, opts ...RequestOption) (*Response[T], error) {
	o := c.options(method, path, opts)
	if hasBody {
		if err := o.setContent(body); err != nil {
			return nil, err
		}
	}

	resp, err := c.http.Do(ctx, o.req)
	if err != nil {
		if resp != nil {
			if data, decErr := decode[T](o, resp); decErr == nil {
				return &Response[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, err
			}
		}
		return nil, err
	}

	data, err := decode[T](o, resp)
	if err != nil {
		return nil, err
	}
	return &Response[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
