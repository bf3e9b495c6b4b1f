package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("connection refused"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Internal("wrapped", originalErr)

	if unwrapped := errors.Unwrap(appErr); unwrapped != originalErr {
		t.Errorf("Unwrap() should return the original error")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"NotFound", NotFound("Resource"), CodeNotFound, http.StatusNotFound},
		{"InvalidInput", InvalidInput("bad time"), CodeInvalidInput, http.StatusBadRequest},
		{"Validation", Validation("invalid", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"Unauthorized", Unauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{"Forbidden", Forbidden("not yours"), CodeForbidden, http.StatusForbidden},
		{"Conflict", Conflict("slot taken"), CodeConflict, http.StatusConflict},
		{"Internal", Internal("boom", errors.New("x")), CodeInternal, http.StatusInternalServerError},
		{"Unavailable", Unavailable("database"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Booking", "665f1c2e8b3e4a0012345678")

	if err.Message != "Booking not found" {
		t.Errorf("expected message 'Booking not found', got %s", err.Message)
	}
	if err.Details["id"] != "665f1c2e8b3e4a0012345678" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("slot taken")
	if AsAppError(appErr) != appErr {
		t.Error("AsAppError should return the same AppError unchanged")
	}

	raw := errors.New("driver failure")
	converted := AsAppError(raw)
	if converted.Code != CodeInternal {
		t.Errorf("expected %s for unknown errors, got %s", CodeInternal, converted.Code)
	}
	if !errors.Is(converted, raw) {
		t.Error("converted error should wrap the original")
	}
}
