// Package rest provides typed REST verbs built on the HTTP client.
//
// It inherits all features from httpclient (auth, TLS, retry, tracing)
// and adds serialization of request content and decoding of responses:
//
//	client, err := rest.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth("token"),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//
//	user, err := rest.GetContent[User](ctx, client, "/users/123")
//
//	created, err := rest.PostContentAs[CreateUser, User](ctx, client, "/users",
//	    CreateUser{Name: "Alice"}, rest.WithIgnoreDefaultValues())
//
// Content is sent as the client's media type ("text/json" unless
// configured) with a utf-8 charset. WithMediaType, WithSerializer and
// WithDeserializer change that per request. An empty response body decodes
// to the zero value.
//
// The envelope variants Get, Post, Put, Patch and Delete also return the
// status code and headers.
package rest
