package results

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/restsense/errors"
)

// Offered lists the media types object results can be rendered as, in
// order of preference.
var Offered = []string{gin.MIMEJSON, gin.MIMEXML, gin.MIMEYAML}

// Result is an HTTP response a handler returns.
type Result interface {
	// StatusCode is the HTTP status the result renders with.
	StatusCode() int
	// Render writes the response.
	Render(c *gin.Context)
}

// ObjectResult renders Value with Status. A nil Value renders the status
// alone.
type ObjectResult struct {
	Status  int
	Value   any
	Headers map[string]string
}

// NewObjectResult creates an object result for any status.
func NewObjectResult(status int, value any) *ObjectResult {
	return &ObjectResult{Status: status, Value: value}
}

// StatusCode implements Result.
func (r *ObjectResult) StatusCode() int {
	if r == nil {
		return http.StatusNoContent
	}
	return r.Status
}

// WithHeader sets a response header.
func (r *ObjectResult) WithHeader(key, value string) *ObjectResult {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// Render implements Result. A nil result renders 204 No Content.
func (r *ObjectResult) Render(c *gin.Context) {
	if r == nil {
		writeStatus(c, http.StatusNoContent)
		return
	}
	for k, v := range r.Headers {
		c.Header(k, v)
	}

	switch v := r.Value.(type) {
	case nil:
		writeStatus(c, r.Status)
	case *apperrors.ProblemDetails:
		c.Header("Content-Type", apperrors.MediaTypeProblemJSON)
		c.JSON(r.Status, v)
	default:
		if !bodyAllowed(r.Status) {
			writeStatus(c, r.Status)
			return
		}
		// Accept headers naming none of Offered fall back to JSON.
		switch c.NegotiateFormat(Offered...) {
		case gin.MIMEXML:
			c.XML(r.Status, v)
		case gin.MIMEYAML:
			c.YAML(r.Status, v)
		default:
			c.JSON(r.Status, v)
		}
	}
}

// StatusResult renders a status code without a body.
type StatusResult struct {
	Status int
}

// StatusCode implements Result.
func (r *StatusResult) StatusCode() int {
	if r == nil {
		return http.StatusNoContent
	}
	return r.Status
}

// Render implements Result. A nil result renders 204 No Content.
func (r *StatusResult) Render(c *gin.Context) {
	if r == nil {
		writeStatus(c, http.StatusNoContent)
		return
	}
	writeStatus(c, r.Status)
}

// Handle adapts an action returning a Result to a gin.HandlerFunc. A nil
// result renders 204 No Content.
func Handle(action func(c *gin.Context) Result) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := action(c)
		if result == nil {
			result = NoContent()
		}
		result.Render(c)
	}
}

func writeStatus(c *gin.Context, status int) {
	c.Status(status)
	c.Writer.WriteHeaderNow()
}

// bodyAllowed reports whether a status permits a response body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
