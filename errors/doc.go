// Package errors provides the application error type shared by the client
// and server halves of restsense. AppError carries a machine-readable code
// and the HTTP status it maps to; ProblemDetails is the RFC 7807 body both
// sides exchange for validation failures.
package errors
