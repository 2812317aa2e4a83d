package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/kbukum/restsense/errors"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request deadline or a 408 response.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeCanceled indicates the caller cancelled the request.
	ErrCodeCanceled
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403/407).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404/410).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a rejected request (other 4xx) or invalid input.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeSerialization indicates a body could not be encoded or decoded.
	ErrCodeSerialization
	// ErrCodeUnexpected indicates a status outside the success and error ranges.
	ErrCodeUnexpected
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeCanceled:
		return "canceled"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	case ErrCodeSerialization:
		return "serialization"
	case ErrCodeUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Headers are the response headers (nil for connection-level errors).
	Headers map[string]string
	// Problem is the parsed problem details body, if the server sent one.
	Problem *apperrors.ProblemDetails
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the status sentinels (ErrNotFound, ErrServiceUnavailable, ...)
// by status code.
func (e *Error) Is(target error) bool {
	var s statusError
	if errors.As(target, &s) {
		return e.StatusCode != 0 && int(s) == e.StatusCode
	}
	return false
}

// ValidationErrors returns the field errors of a problem details body.
func (e *Error) ValidationErrors() map[string][]string {
	if e.Problem == nil {
		return nil
	}
	return e.Problem.Errors
}

// ToAppError converts the error into an application error carrying the same
// status, for handlers that relay upstream failures.
func (e *Error) ToAppError() *apperrors.AppError {
	var app *apperrors.AppError
	switch {
	case e.StatusCode != 0:
		app = apperrors.FromStatus(e.StatusCode, e.Message)
	case e.Code == ErrCodeTimeout:
		app = apperrors.Timeout("upstream request")
	case e.Code == ErrCodeConnection:
		app = apperrors.ServiceUnavailable("upstream")
	default:
		app = apperrors.Internal(e)
	}
	if e.Problem != nil && len(e.Problem.Errors) > 0 {
		app.WithDetail("fields", e.Problem.Errors)
	}
	return app.WithCause(e)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewCanceledError creates a cancellation error.
func NewCanceledError(err error) *Error {
	return &Error{
		Code:    ErrCodeCanceled,
		Message: err.Error(),
		Err:     err,
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewSerializationError creates a serialization error.
func NewSerializationError(err error) *Error {
	return &Error{
		Code:    ErrCodeSerialization,
		Message: err.Error(),
		Err:     err,
	}
}

// contextError classifies a transport failure after the context ended.
// The context error is kept in the chain so errors.Is(err, context.Canceled)
// and errors.Is(err, context.DeadlineExceeded) hold.
func contextError(ctx context.Context, err error) *Error {
	cause := ctx.Err()
	if c := context.Cause(ctx); c != nil && c != cause {
		cause = fmt.Errorf("%w: %w", cause, c)
	}

	var e *Error
	if errors.Is(ctx.Err(), context.Canceled) {
		e = NewCanceledError(cause)
	} else {
		e = NewTimeoutError(cause)
	}
	if err != nil {
		e.Message = err.Error()
	}
	return e
}

// transportError classifies an error returned by the round trip.
func transportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil {
		return contextError(ctx, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	var te interface{ Timeout() bool }
	if errors.As(err, &te) && te.Timeout() {
		return NewTimeoutError(err)
	}
	return NewConnectionError(err)
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	e := &Error{
		StatusCode: statusCode,
		Code:       codeForStatus(statusCode),
		Retryable:  retryableStatus(statusCode),
		Message:    statusMessage(statusCode),
		Body:       body,
	}
	if statusCode >= 400 {
		if p := apperrors.ParseProblem(body); p != nil {
			e.Problem = p
			e.Message = p.Error()
		}
	}
	return e
}

func codeForStatus(statusCode int) ErrorCode {
	switch {
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden,
		statusCode == http.StatusProxyAuthRequired:
		return ErrCodeAuth
	case statusCode == http.StatusNotFound, statusCode == http.StatusGone:
		return ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case statusCode == http.StatusRequestTimeout:
		return ErrCodeTimeout
	case statusCode >= 400 && statusCode < 500:
		return ErrCodeValidation
	case statusCode >= 500 && statusCode < 600:
		return ErrCodeServer
	default:
		return ErrCodeUnexpected
	}
}

func retryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func statusMessage(statusCode int) string {
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	return hasCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a cancellation error.
func IsCanceled(err error) bool {
	return hasCode(err, ErrCodeCanceled)
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	return hasCode(err, ErrCodeConnection)
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	return hasCode(err, ErrCodeAuth)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	return hasCode(err, ErrCodeRateLimit)
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	return hasCode(err, ErrCodeServer)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsSerialization checks if an error is a serialization error.
func IsSerialization(err error) bool {
	return hasCode(err, ErrCodeSerialization)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
