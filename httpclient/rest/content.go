package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kbukum/restsense/codec"
	"github.com/kbukum/restsense/httpclient"
)

// GetContent sends a GET request and decodes the body into T.
func GetContent[T any](ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) (T, error) {
	return exchange[T](ctx, c, http.MethodGet, relativeURL, nil, opts)
}

// GetContentString sends a GET request and returns the raw body.
func GetContentString(ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) (string, error) {
	return exchange[string](ctx, c, http.MethodGet, relativeURL, nil, opts)
}

// GetContentStream sends a GET request and returns the unread body. The
// caller must close it.
func GetContentStream(ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) (io.ReadCloser, error) {
	o := c.options(http.MethodGet, relativeURL, opts)
	return stream(ctx, c, o)
}

// PostContentWithNoResponse posts content and discards the response body.
func PostContentWithNoResponse[T any](ctx context.Context, c *Client, relativeURL string, content T, opts ...RequestOption) error {
	_, err := exchange[struct{}](ctx, c, http.MethodPost, relativeURL, content, append(opts, discardBody))
	return err
}

// PostContent posts content and decodes the response into the same type.
func PostContent[T any](ctx context.Context, c *Client, relativeURL string, content T, opts ...RequestOption) (T, error) {
	return exchange[T](ctx, c, http.MethodPost, relativeURL, content, opts)
}

// PostContentAs posts content and decodes the response into TResult.
func PostContentAs[TContent, TResult any](ctx context.Context, c *Client, relativeURL string, content TContent, opts ...RequestOption) (TResult, error) {
	return exchange[TResult](ctx, c, http.MethodPost, relativeURL, content, opts)
}

// PostContentWithStreamResponse posts content and returns the unread
// response body. The caller must close it.
func PostContentWithStreamResponse[T any](ctx context.Context, c *Client, relativeURL string, content T, opts ...RequestOption) (io.ReadCloser, error) {
	o := c.options(http.MethodPost, relativeURL, opts)
	if err := o.setContent(content); err != nil {
		return nil, err
	}
	return stream(ctx, c, o)
}

// PostForm posts content as multipart/form-data built from its `form` tags
// and decodes the response into TResult.
func PostForm[TContent, TResult any](ctx context.Context, c *Client, relativeURL string, content TContent, opts ...RequestOption) (TResult, error) {
	var zero TResult
	o := c.options(http.MethodPost, relativeURL, opts)
	if err := o.check(content); err != nil {
		return zero, err
	}

	body, err := codec.EncodeForm(content)
	if err != nil {
		return zero, httpclient.NewSerializationError(fmt.Errorf("httpclient/rest: encode form: %w", err))
	}
	o.req.Body = body

	resp, err := c.http.Do(ctx, o.req)
	if err != nil {
		return zero, err
	}
	return decode[TResult](o, resp)
}

// PutContent puts content and decodes the response into the same type.
func PutContent[T any](ctx context.Context, c *Client, relativeURL string, content T, opts ...RequestOption) (T, error) {
	return exchange[T](ctx, c, http.MethodPut, relativeURL, content, opts)
}

// PutContentAs puts content and decodes the response into TResult.
func PutContentAs[TContent, TResult any](ctx context.Context, c *Client, relativeURL string, content TContent, opts ...RequestOption) (TResult, error) {
	return exchange[TResult](ctx, c, http.MethodPut, relativeURL, content, opts)
}

// PutContentWithNoBody sends a PUT without a body and decodes the response.
func PutContentWithNoBody[T any](ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) (T, error) {
	return exchange[T](ctx, c, http.MethodPut, relativeURL, nil, opts)
}

// DeleteContent sends a DELETE request and discards the response body.
func DeleteContent(ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) error {
	_, err := exchange[struct{}](ctx, c, http.MethodDelete, relativeURL, nil, append(opts, discardBody))
	return err
}

// DeleteContentAs sends a DELETE request and decodes the response into T.
func DeleteContentAs[T any](ctx context.Context, c *Client, relativeURL string, opts ...RequestOption) (T, error) {
	return exchange[T](ctx, c, http.MethodDelete, relativeURL, nil, opts)
}

// exchange sends one request, with content when it is non-nil, and decodes
// a successful response.
func exchange[T any](ctx context.Context, c *Client, method, relativeURL string, content any, opts []RequestOption) (T, error) {
	var zero T
	o := c.options(method, relativeURL, opts)
	if content != nil {
		if err := o.setContent(content); err != nil {
			return zero, err
		}
	}

	resp, err := c.http.Do(ctx, o.req)
	if err != nil {
		return zero, err
	}
	return decode[T](o, resp)
}

func stream(ctx context.Context, c *Client, o *requestOptions) (io.ReadCloser, error) {
	resp, err := c.http.DoStream(ctx, o.req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// discardBody skips decoding for verbs without a result.
func discardBody(o *requestOptions) {
	o.deserializer = codec.DeserializerFunc(func([]byte, any) error { return nil })
}
