package results

import "net/http"

// OK renders 200 with value.
func OK(value any) *ObjectResult {
	return NewObjectResult(http.StatusOK, value)
}

// Created renders 201 with value. A non-empty location is sent as the
// Location header.
func Created(location string, value any) *ObjectResult {
	r := NewObjectResult(http.StatusCreated, value)
	if location != "" {
		r.WithHeader("Location", location)
	}
	return r
}

// Accepted renders 202 with value.
func Accepted(value any) *ObjectResult {
	return NewObjectResult(http.StatusAccepted, value)
}

// NoContent renders 204.
func NoContent() *StatusResult {
	return &StatusResult{Status: http.StatusNoContent}
}

// Status renders a bare status code.
func Status(status int) *StatusResult {
	return &StatusResult{Status: status}
}

// BadRequest renders 400 Bad Request.
func BadRequest(value any) *ObjectResult {
	return NewObjectResult(http.StatusBadRequest, value)
}

// Unauthorized renders 401 Unauthorized.
func Unauthorized(value any) *ObjectResult {
	return NewObjectResult(http.StatusUnauthorized, value)
}

// PaymentRequired renders 402 Payment Required.
func PaymentRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusPaymentRequired, value)
}

// Forbidden renders 403 Forbidden.
func Forbidden(value any) *ObjectResult {
	return NewObjectResult(http.StatusForbidden, value)
}

// NotFound renders 404 Not Found.
func NotFound(value any) *ObjectResult {
	return NewObjectResult(http.StatusNotFound, value)
}

// MethodNotAllowed renders 405 Method Not Allowed.
func MethodNotAllowed(value any) *ObjectResult {
	return NewObjectResult(http.StatusMethodNotAllowed, value)
}

// NotAcceptable renders 406 Not Acceptable.
func NotAcceptable(value any) *ObjectResult {
	return NewObjectResult(http.StatusNotAcceptable, value)
}

// ProxyAuthenticationRequired renders 407 Proxy Authentication Required.
func ProxyAuthenticationRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusProxyAuthRequired, value)
}

// RequestTimeout renders 408 Request Timeout.
func RequestTimeout(value any) *ObjectResult {
	return NewObjectResult(http.StatusRequestTimeout, value)
}

// Conflict renders 409 Conflict.
func Conflict(value any) *ObjectResult {
	return NewObjectResult(http.StatusConflict, value)
}

// Gone renders 410 Gone.
func Gone(value any) *ObjectResult {
	return NewObjectResult(http.StatusGone, value)
}

// LengthRequired renders 411 Length Required.
func LengthRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusLengthRequired, value)
}

// PreconditionFailed renders 412 Precondition Failed.
func PreconditionFailed(value any) *ObjectResult {
	return NewObjectResult(http.StatusPreconditionFailed, value)
}

// RequestEntityTooLarge renders 413 Request Entity Too Large.
func RequestEntityTooLarge(value any) *ObjectResult {
	return NewObjectResult(http.StatusRequestEntityTooLarge, value)
}

// RequestURITooLong renders 414 Request URI Too Long.
func RequestURITooLong(value any) *ObjectResult {
	return NewObjectResult(http.StatusRequestURITooLong, value)
}

// UnsupportedMediaType renders 415 Unsupported Media Type.
func UnsupportedMediaType(value any) *ObjectResult {
	return NewObjectResult(http.StatusUnsupportedMediaType, value)
}

// RequestedRangeNotSatisfiable renders 416 Requested Range Not Satisfiable.
func RequestedRangeNotSatisfiable(value any) *ObjectResult {
	return NewObjectResult(http.StatusRequestedRangeNotSatisfiable, value)
}

// ExpectationFailed renders 417 Expectation Failed.
func ExpectationFailed(value any) *ObjectResult {
	return NewObjectResult(http.StatusExpectationFailed, value)
}

// MisdirectedRequest renders 421 Misdirected Request.
func MisdirectedRequest(value any) *ObjectResult {
	return NewObjectResult(http.StatusMisdirectedRequest, value)
}

// UnprocessableEntity renders 422 Unprocessable Entity.
func UnprocessableEntity(value any) *ObjectResult {
	return NewObjectResult(http.StatusUnprocessableEntity, value)
}

// Locked renders 423 Locked.
func Locked(value any) *ObjectResult {
	return NewObjectResult(http.StatusLocked, value)
}

// FailedDependency renders 424 Failed Dependency.
func FailedDependency(value any) *ObjectResult {
	return NewObjectResult(http.StatusFailedDependency, value)
}

// UpgradeRequired renders 426 Upgrade Required.
func UpgradeRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusUpgradeRequired, value)
}

// PreconditionRequired renders 428 Precondition Required.
func PreconditionRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusPreconditionRequired, value)
}

// TooManyRequests renders 429 Too Many Requests.
func TooManyRequests(value any) *ObjectResult {
	return NewObjectResult(http.StatusTooManyRequests, value)
}

// RequestHeaderFieldsTooLarge renders 431 Request Header Fields Too Large.
func RequestHeaderFieldsTooLarge(value any) *ObjectResult {
	return NewObjectResult(http.StatusRequestHeaderFieldsTooLarge, value)
}

// UnavailableForLegalReasons renders 451 Unavailable For Legal Reasons.
func UnavailableForLegalReasons(value any) *ObjectResult {
	return NewObjectResult(http.StatusUnavailableForLegalReasons, value)
}

// InternalServerError renders 500 Internal Server Error.
func InternalServerError(value any) *ObjectResult {
	return NewObjectResult(http.StatusInternalServerError, value)
}

// NotImplemented renders 501 Not Implemented.
func NotImplemented(value any) *ObjectResult {
	return NewObjectResult(http.StatusNotImplemented, value)
}

// BadGateway renders 502 Bad Gateway.
func BadGateway(value any) *ObjectResult {
	return NewObjectResult(http.StatusBadGateway, value)
}

// GatewayTimeout renders 504 Gateway Timeout.
func GatewayTimeout(value any) *ObjectResult {
	return NewObjectResult(http.StatusGatewayTimeout, value)
}

// HTTPVersionNotSupported renders 505 HTTP Version Not Supported.
func HTTPVersionNotSupported(value any) *ObjectResult {
	return NewObjectResult(http.StatusHTTPVersionNotSupported, value)
}

// VariantAlsoNegotiates renders 506 Variant Also Negotiates.
func VariantAlsoNegotiates(value any) *ObjectResult {
	return NewObjectResult(http.StatusVariantAlsoNegotiates, value)
}

// InsufficientStorage renders 507 Insufficient Storage.
func InsufficientStorage(value any) *ObjectResult {
	return NewObjectResult(http.StatusInsufficientStorage, value)
}

// LoopDetected renders 508 Loop Detected.
func LoopDetected(value any) *ObjectResult {
	return NewObjectResult(http.StatusLoopDetected, value)
}

// NotExtended renders 510 Not Extended.
func NotExtended(value any) *ObjectResult {
	return NewObjectResult(http.StatusNotExtended, value)
}

// NetworkAuthenticationRequired renders 511 Network Authentication Required.
func NetworkAuthenticationRequired(value any) *ObjectResult {
	return NewObjectResult(http.StatusNetworkAuthenticationRequired, value)
}

// ServiceUnavailable renders 503 Service Unavailable. Use WithHeader to
// send Retry-After.
func ServiceUnavailable(value any) *ObjectResult {
	return NewObjectResult(http.StatusServiceUnavailable, value)
}

var named = map[int]func(any) *ObjectResult{
	http.StatusOK:                            OK,
	http.StatusAccepted:                      Accepted,
	http.StatusBadRequest:                    BadRequest,
	http.StatusUnauthorized:                  Unauthorized,
	http.StatusPaymentRequired:               PaymentRequired,
	http.StatusForbidden:                     Forbidden,
	http.StatusNotFound:                      NotFound,
	http.StatusMethodNotAllowed:              MethodNotAllowed,
	http.StatusNotAcceptable:                 NotAcceptable,
	http.StatusProxyAuthRequired:             ProxyAuthenticationRequired,
	http.StatusRequestTimeout:                RequestTimeout,
	http.StatusConflict:                      Conflict,
	http.StatusGone:                          Gone,
	http.StatusLengthRequired:                LengthRequired,
	http.StatusPreconditionFailed:            PreconditionFailed,
	http.StatusRequestEntityTooLarge:         RequestEntityTooLarge,
	http.StatusRequestURITooLong:             RequestURITooLong,
	http.StatusUnsupportedMediaType:          UnsupportedMediaType,
	http.StatusRequestedRangeNotSatisfiable:  RequestedRangeNotSatisfiable,
	http.StatusExpectationFailed:             ExpectationFailed,
	http.StatusMisdirectedRequest:            MisdirectedRequest,
	http.StatusUnprocessableEntity:           UnprocessableEntity,
	http.StatusLocked:                        Locked,
	http.StatusFailedDependency:              FailedDependency,
	http.StatusUpgradeRequired:               UpgradeRequired,
	http.StatusPreconditionRequired:          PreconditionRequired,
	http.StatusTooManyRequests:               TooManyRequests,
	http.StatusRequestHeaderFieldsTooLarge:   RequestHeaderFieldsTooLarge,
	http.StatusUnavailableForLegalReasons:    UnavailableForLegalReasons,
	http.StatusInternalServerError:           InternalServerError,
	http.StatusNotImplemented:                NotImplemented,
	http.StatusBadGateway:                    BadGateway,
	http.StatusServiceUnavailable:            ServiceUnavailable,
	http.StatusGatewayTimeout:                GatewayTimeout,
	http.StatusHTTPVersionNotSupported:       HTTPVersionNotSupported,
	http.StatusVariantAlsoNegotiates:         VariantAlsoNegotiates,
	http.StatusInsufficientStorage:           InsufficientStorage,
	http.StatusLoopDetected:                  LoopDetected,
	http.StatusNotExtended:                   NotExtended,
	http.StatusNetworkAuthenticationRequired: NetworkAuthenticationRequired,
}

// ForStatus returns the named result for status, or false when the status
// has no named constructor.
func ForStatus(status int, value any) (*ObjectResult, bool) {
	ctor, ok := named[status]
	if !ok {
		return nil, false
	}
	return ctor(value), true
}
