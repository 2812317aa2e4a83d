package results

import (
	"errors"
	"net/http"

	apperrors "github.com/kbukum/restsense/errors"
	"github.com/kbukum/restsense/httpclient"
	"github.com/kbukum/restsense/validation"
)

// FromError converts an error into the matching object result. Application
// errors keep their status; failed upstream calls are relayed with the
// upstream status; anything else becomes 500 Internal Server Error.
func FromError(err error) *ObjectResult {
	if err == nil {
		return InternalServerError(apperrors.Internal(nil).ToResponse())
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		var clientErr *httpclient.Error
		if errors.As(err, &clientErr) {
			appErr = clientErr.ToAppError()
		} else {
			appErr = apperrors.Internal(err)
		}
	}

	r := NewObjectResult(appErr.HTTPStatus, appErr.ToResponse())
	if appErr.HTTPStatus == 0 {
		r.Status = http.StatusInternalServerError
	}
	return r
}

// Problem renders an RFC 7807 problem document for status.
func Problem(status int, detail string) *ObjectResult {
	return NewObjectResult(status, apperrors.NewProblem(status, detail))
}

// ValidationProblem renders a 400 problem document listing field errors.
func ValidationProblem(fields map[string][]string) *ObjectResult {
	return NewObjectResult(http.StatusBadRequest, apperrors.NewValidationProblem(fields))
}

// Validate checks v's `validate` tags and returns a validation problem, or
// nil when v is valid.
func Validate(v any) Result {
	if p := validation.Problem(v); p != nil {
		return NewObjectResult(http.StatusBadRequest, p)
	}
	return nil
}
