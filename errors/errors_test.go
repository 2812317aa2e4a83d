package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
	if New(ErrCodeNotFound, "missing", http.StatusNotFound).Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("user", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Details["resource"] != "user" {
		t.Errorf("expected resource=user, got %v", err.Details["resource"])
	}
}

func TestAppError_Unauthorized_DefaultMessage(t *testing.T) {
	if got := Unauthorized("").Message; got != "Authentication required." {
		t.Errorf("expected default message, got %q", got)
	}
	if got := Unauthorized("bad token").Message; got != "bad token" {
		t.Errorf("expected custom message, got %q", got)
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NotFound("item", "1").WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("item", "1").WithDetails(map[string]any{"extra": "info"})
	if err.Details["extra"] != "info" || err.Details["resource"] != "item" {
		t.Errorf("expected merged details, got %v", err.Details)
	}

	err = (&AppError{}).WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ServiceUnavailable", ServiceUnavailable("api"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"Timeout", Timeout("query"), ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{"RateLimited", RateLimited(), ErrCodeRateLimited, http.StatusTooManyRequests, true},
		{"Conflict", Conflict("version mismatch"), ErrCodeConflict, http.StatusConflict, false},
		{"Locked", Locked("invoice"), ErrCodeLocked, http.StatusLocked, false},
		{"FailedDependency", FailedDependency("billing", nil), ErrCodeFailedDependency, http.StatusFailedDependency, false},
		{"MissingField", MissingField("name"), ErrCodeMissingField, http.StatusBadRequest, false},
		{"UnsupportedMediaType", UnsupportedMediaType("text/csv"), ErrCodeUnsupportedMediaType, http.StatusUnsupportedMediaType, false},
		{"Forbidden", Forbidden(""), ErrCodeForbidden, http.StatusForbidden, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
		{"NotImplemented", NotImplemented("export"), ErrCodeNotImplemented, http.StatusNotImplemented, false},
		{"ExternalServiceError", ExternalServiceError("stripe", nil), ErrCodeExternalService, http.StatusBadGateway, true},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, tc.err.Retryable)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{http.StatusNotFound, ErrCodeNotFound, false},
		{http.StatusLocked, ErrCodeLocked, false},
		{http.StatusTeapot, ErrCodeInvalidInput, false},
		{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, true},
		{http.StatusGatewayTimeout, ErrCodeTimeout, true},
		{http.StatusLoopDetected, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		err := FromStatus(tt.status, "")
		if err.Code != tt.code {
			t.Errorf("FromStatus(%d).Code = %s, want %s", tt.status, err.Code, tt.code)
		}
		if err.HTTPStatus != tt.status {
			t.Errorf("FromStatus(%d).HTTPStatus = %d", tt.status, err.HTTPStatus)
		}
		if err.Message != http.StatusText(tt.status) {
			t.Errorf("FromStatus(%d).Message = %q, want status text", tt.status, err.Message)
		}
		if err.Retryable != tt.retryable {
			t.Errorf("FromStatus(%d).Retryable = %v, want %v", tt.status, err.Retryable, tt.retryable)
		}
	}
}

func TestAppError_ToResponse(t *testing.T) {
	resp := NotFound("user", "42").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected code NOT_FOUND in response, got %s", resp.Error.Code)
	}
	if resp.Error.Details["resource"] != "user" {
		t.Error("expected resource=user in response details")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to return true")
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}
