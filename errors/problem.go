package errors

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// MediaTypeProblemJSON is the RFC 7807 media type.
const MediaTypeProblemJSON = "application/problem+json"

// ProblemDetails is an RFC 7807 problem document. Errors holds per-field
// validation messages when the problem describes a validation failure.
type ProblemDetails struct {
	Type     string              `json:"type,omitempty"`
	Title    string              `json:"title,omitempty"`
	Status   int                 `json:"status,omitempty"`
	Detail   string              `json:"detail,omitempty"`
	Instance string              `json:"instance,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// NewProblem creates a problem document for a status code.
func NewProblem(status int, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   "about:blank",
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// NewValidationProblem creates a 400 problem document listing field errors.
func NewValidationProblem(fields map[string][]string) *ProblemDetails {
	p := NewProblem(http.StatusBadRequest, "One or more validation errors occurred.")
	p.Errors = fields
	return p
}

// AddError appends a message for a field.
func (p *ProblemDetails) AddError(field, message string) *ProblemDetails {
	if p.Errors == nil {
		p.Errors = make(map[string][]string)
	}
	p.Errors[field] = append(p.Errors[field], message)
	return p
}

// HasErrors reports whether any field errors are present.
func (p *ProblemDetails) HasErrors() bool {
	return p != nil && len(p.Errors) > 0
}

// Error lets a problem document travel as an error.
func (p *ProblemDetails) Error() string {
	var b strings.Builder
	b.WriteString(p.Title)
	if p.Detail != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(p.Detail)
	}
	if len(p.Errors) > 0 {
		fields := make([]string, 0, len(p.Errors))
		for f := range p.Errors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			b.WriteString("; ")
			b.WriteString(f)
			b.WriteString(": ")
			b.WriteString(strings.Join(p.Errors[f], ", "))
		}
	}
	return b.String()
}

// ToAppError converts the problem into an AppError carrying the field errors
// as details.
func (p *ProblemDetails) ToAppError() *AppError {
	msg := p.Detail
	if msg == "" {
		msg = p.Title
	}
	appErr := FromStatus(p.Status, msg)
	if len(p.Errors) > 0 {
		appErr.WithDetail("errors", p.Errors)
	}
	return appErr
}

// ParseProblem decodes a problem document from a response body. It returns
// nil when the body is not JSON or carries neither a title, a detail nor
// field errors.
func ParseProblem(body []byte) *ProblemDetails {
	if len(body) == 0 {
		return nil
	}
	var p ProblemDetails
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	if p.Title == "" && p.Detail == "" && len(p.Errors) == 0 {
		return nil
	}
	return &p
}
