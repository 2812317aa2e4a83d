package httpclient

import (
	"fmt"
	"net/http"
)

// statusError is the sentinel type matched by (*Error).Is.
type statusError int

func (s statusError) Error() string {
	return fmt.Sprintf("httpclient: HTTP %d %s", int(s), http.StatusText(int(s)))
}

// Status sentinels. A classified *Error matches the sentinel of its status:
//
//	if errors.Is(err, httpclient.ErrServiceUnavailable) { ... }
var (
	ErrBadRequest                    error = statusError(http.StatusBadRequest)
	ErrUnauthorized                  error = statusError(http.StatusUnauthorized)
	ErrPaymentRequired               error = statusError(http.StatusPaymentRequired)
	ErrForbidden                     error = statusError(http.StatusForbidden)
	ErrNotFound                      error = statusError(http.StatusNotFound)
	ErrMethodNotAllowed              error = statusError(http.StatusMethodNotAllowed)
	ErrNotAcceptable                 error = statusError(http.StatusNotAcceptable)
	ErrProxyAuthenticationRequired   error = statusError(http.StatusProxyAuthRequired)
	ErrRequestTimeout                error = statusError(http.StatusRequestTimeout)
	ErrConflict                      error = statusError(http.StatusConflict)
	ErrGone                          error = statusError(http.StatusGone)
	ErrLengthRequired                error = statusError(http.StatusLengthRequired)
	ErrPreconditionFailed            error = statusError(http.StatusPreconditionFailed)
	ErrRequestEntityTooLarge         error = statusError(http.StatusRequestEntityTooLarge)
	ErrRequestURITooLong             error = statusError(http.StatusRequestURITooLong)
	ErrUnsupportedMediaType          error = statusError(http.StatusUnsupportedMediaType)
	ErrRequestedRangeNotSatisfiable  error = statusError(http.StatusRequestedRangeNotSatisfiable)
	ErrExpectationFailed             error = statusError(http.StatusExpectationFailed)
	ErrMisdirectedRequest            error = statusError(http.StatusMisdirectedRequest)
	ErrUnprocessableEntity           error = statusError(http.StatusUnprocessableEntity)
	ErrLocked                        error = statusError(http.StatusLocked)
	ErrFailedDependency              error = statusError(http.StatusFailedDependency)
	ErrUpgradeRequired               error = statusError(http.StatusUpgradeRequired)
	ErrPreconditionRequired          error = statusError(http.StatusPreconditionRequired)
	ErrTooManyRequests               error = statusError(http.StatusTooManyRequests)
	ErrRequestHeaderFieldsTooLarge   error = statusError(http.StatusRequestHeaderFieldsTooLarge)
	ErrUnavailableForLegalReasons    error = statusError(http.StatusUnavailableForLegalReasons)
	ErrInternalServerError           error = statusError(http.StatusInternalServerError)
	ErrNotImplemented                error = statusError(http.StatusNotImplemented)
	ErrBadGateway                    error = statusError(http.StatusBadGateway)
	ErrServiceUnavailable            error = statusError(http.StatusServiceUnavailable)
	ErrGatewayTimeout                error = statusError(http.StatusGatewayTimeout)
	ErrHTTPVersionNotSupported       error = statusError(http.StatusHTTPVersionNotSupported)
	ErrVariantAlsoNegotiates         error = statusError(http.StatusVariantAlsoNegotiates)
	ErrInsufficientStorage           error = statusError(http.StatusInsufficientStorage)
	ErrLoopDetected                  error = statusError(http.StatusLoopDetected)
	ErrNotExtended                   error = statusError(http.StatusNotExtended)
	ErrNetworkAuthenticationRequired error = statusError(http.StatusNetworkAuthenticationRequired)
)

var statusTable = map[int]error{}

func init() {
	for _, err := range []error{
		ErrBadRequest, ErrUnauthorized, ErrPaymentRequired, ErrForbidden,
		ErrNotFound, ErrMethodNotAllowed, ErrNotAcceptable,
		ErrProxyAuthenticationRequired, ErrRequestTimeout, ErrConflict, ErrGone,
		ErrLengthRequired, ErrPreconditionFailed, ErrRequestEntityTooLarge,
		ErrRequestURITooLong, ErrUnsupportedMediaType,
		ErrRequestedRangeNotSatisfiable, ErrExpectationFailed,
		ErrMisdirectedRequest, ErrUnprocessableEntity, ErrLocked,
		ErrFailedDependency, ErrUpgradeRequired, ErrPreconditionRequired,
		ErrTooManyRequests, ErrRequestHeaderFieldsTooLarge,
		ErrUnavailableForLegalReasons, ErrInternalServerError, ErrNotImplemented,
		ErrBadGateway, ErrServiceUnavailable, ErrGatewayTimeout,
		ErrHTTPVersionNotSupported, ErrVariantAlsoNegotiates,
		ErrInsufficientStorage, ErrLoopDetected, ErrNotExtended,
		ErrNetworkAuthenticationRequired,
	} {
		statusTable[int(err.(statusError))] = err
	}
}

// StatusError returns the sentinel for a status code, or nil when the status
// has no named sentinel.
func StatusError(statusCode int) error {
	return statusTable[statusCode]
}
