package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Availability errors (retryable)
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeConnectionFailed   ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeBadGateway         ErrorCode = "BAD_GATEWAY"
)

// Resource errors
const (
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeGone               ErrorCode = "GONE"
	ErrCodeAlreadyExists      ErrorCode = "ALREADY_EXISTS"
	ErrCodeConflict           ErrorCode = "CONFLICT"
	ErrCodeLocked             ErrorCode = "LOCKED"
	ErrCodeFailedDependency   ErrorCode = "FAILED_DEPENDENCY"
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"
)

// Request errors
const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField         ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat        ErrorCode = "INVALID_FORMAT"
	ErrCodeUnprocessable        ErrorCode = "UNPROCESSABLE"
	ErrCodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeNotAcceptable        ErrorCode = "NOT_ACCEPTABLE"
	ErrCodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodePayloadTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
)

// Authentication/Authorization errors
const (
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
)

// Internal errors
const (
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotImplemented  ErrorCode = "NOT_IMPLEMENTED"
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeBadGateway:         true,
	ErrCodeExternalService:    true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

var statusCodes = map[int]ErrorCode{
	http.StatusBadRequest:            ErrCodeInvalidInput,
	http.StatusUnauthorized:          ErrCodeUnauthorized,
	http.StatusForbidden:             ErrCodeForbidden,
	http.StatusNotFound:              ErrCodeNotFound,
	http.StatusMethodNotAllowed:      ErrCodeMethodNotAllowed,
	http.StatusNotAcceptable:         ErrCodeNotAcceptable,
	http.StatusRequestTimeout:        ErrCodeTimeout,
	http.StatusConflict:              ErrCodeConflict,
	http.StatusGone:                  ErrCodeGone,
	http.StatusPreconditionFailed:    ErrCodePreconditionFailed,
	http.StatusRequestEntityTooLarge: ErrCodePayloadTooLarge,
	http.StatusUnsupportedMediaType:  ErrCodeUnsupportedMediaType,
	http.StatusUnprocessableEntity:   ErrCodeUnprocessable,
	http.StatusLocked:                ErrCodeLocked,
	http.StatusFailedDependency:      ErrCodeFailedDependency,
	http.StatusTooManyRequests:       ErrCodeRateLimited,
	http.StatusInternalServerError:   ErrCodeInternal,
	http.StatusNotImplemented:        ErrCodeNotImplemented,
	http.StatusBadGateway:            ErrCodeBadGateway,
	http.StatusServiceUnavailable:    ErrCodeServiceUnavailable,
	http.StatusGatewayTimeout:        ErrCodeTimeout,
}

// CodeForStatus returns the error code conventionally paired with an HTTP
// status. Unlisted 4xx statuses map to INVALID_INPUT and everything else to
// INTERNAL_ERROR.
func CodeForStatus(status int) ErrorCode {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	if status >= 400 && status < 500 {
		return ErrCodeInvalidInput
	}
	return ErrCodeInternal
}
