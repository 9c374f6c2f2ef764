package apierror

import (
	"fmt"
	"net/http"
)

// APIError is the error currency of the service. Code identifies the
// error kind, Message is the generic user-facing title, Details carries
// the kind-specific explanation. Opaque kinds (LOGIN_FAILED,
// UNAUTHORIZED) keep Details generic on purpose.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func Validation(details string) *APIError {
	return New("VALIDATION_ERROR", "Invalid input", details, http.StatusBadRequest)
}

func BadRequest(details string) *APIError {
	return New("BAD_REQUEST", "Invalid input", details, http.StatusBadRequest)
}

// LoginFailed is deliberately undifferentiated: the same value is
// returned for an unknown email and for a wrong password.
func LoginFailed() *APIError {
	return New("LOGIN_FAILED", "Login failed", "Check your login details and try again", http.StatusBadRequest)
}

// Unauthorized covers invalid, expired and superseded tokens as well as
// signing failures. Callers must not be able to tell which check failed.
func Unauthorized() *APIError {
	return New("UNAUTHORIZED", "Authentication required", "The credential is not valid. Log in again", http.StatusUnauthorized)
}

func Forbidden() *APIError {
	return New("FORBIDDEN", "Access denied", "", http.StatusForbidden)
}

func NotFound(details string) *APIError {
	return New("NOT_FOUND", "Resource not found", details, http.StatusNotFound)
}
