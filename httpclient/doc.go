// Package httpclient provides a configurable HTTP client with built-in
// authentication, TLS, retry, tracing and status classification.
//
// The base Client handles all HTTP protocol concerns. The rest subpackage
// layers typed verbs with pluggable serialization on top of it.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/123",
//	})
//
// # Errors
//
// Every non-2xx response yields an *Error. It matches the status sentinel
// of its code and exposes a classification:
//
//	if errors.Is(err, httpclient.ErrServiceUnavailable) { ... }
//	if httpclient.IsRetryable(err) { ... }
//
// A cancelled context yields an error matching context.Canceled; an expired
// deadline yields one matching context.DeadlineExceeded.
//
// # With Retry
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
package httpclient
