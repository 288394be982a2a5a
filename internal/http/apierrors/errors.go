// Package apierrors defines the API error vocabulary and the response
// envelopes. Every endpoint answers either
//
//	{"success": true, "data": ...}
//
// or
//
//	{"error": {"code": "...", "message": "...", "details": ...}}
package apierrors

import (
	"encoding/json"
	"net/http"
)

// Error is a standard API error. Status is not serialized; it drives the
// HTTP status line.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"-"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// WithMessage returns a copy of the error with a different message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Details: e.Details, Status: e.Status}
}

// WithDetails returns a copy of the error carrying extra detail payload.
func (e *Error) WithDetails(details any) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: details, Status: e.Status}
}

// Standard error responses.
var (
	// 400
	ErrValidation          = &Error{Code: "VALIDATION_ERROR", Message: "Invalid request", Status: http.StatusBadRequest}
	ErrInvalidJSON         = &Error{Code: "VALIDATION_ERROR", Message: "Invalid JSON body", Status: http.StatusBadRequest}
	ErrMissingRefreshToken = &Error{Code: "MISSING_REFRESH_TOKEN", Message: "Refresh token is required", Status: http.StatusBadRequest}

	// 401
	ErrUnauthorized        = &Error{Code: "UNAUTHORIZED", Message: "Unauthorized", Status: http.StatusUnauthorized}
	ErrMissingToken        = &Error{Code: "MISSING_TOKEN", Message: "Authorization token is required", Status: http.StatusUnauthorized}
	ErrInvalidToken        = &Error{Code: "INVALID_TOKEN", Message: "Authorization token is invalid", Status: http.StatusUnauthorized}
	ErrTokenExpired        = &Error{Code: "TOKEN_EXPIRED", Message: "Authorization token has expired", Status: http.StatusUnauthorized}
	ErrUserNotFound        = &Error{Code: "USER_NOT_FOUND", Message: "User no longer exists", Status: http.StatusUnauthorized}
	ErrUserInactive        = &Error{Code: "USER_INACTIVE", Message: "User account is inactive", Status: http.StatusUnauthorized}
	ErrInvalidCredentials  = &Error{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", Status: http.StatusUnauthorized}
	ErrAccountInactive     = &Error{Code: "ACCOUNT_INACTIVE", Message: "Account is inactive", Status: http.StatusUnauthorized}
	ErrInvalidRefreshToken = &Error{Code: "INVALID_REFRESH_TOKEN", Message: "Refresh token is invalid or expired", Status: http.StatusUnauthorized}

	// 403
	ErrInsufficientPermissions = &Error{Code: "INSUFFICIENT_PERMISSIONS", Message: "Insufficient permissions for this operation", Status: http.StatusForbidden}

	// 404
	ErrNotFound = &Error{Code: "NOT_FOUND", Message: "Resource not found", Status: http.StatusNotFound}

	// 405
	ErrMethodNotAllowed = &Error{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed", Status: http.StatusMethodNotAllowed}

	// 409
	ErrEmailExists = &Error{Code: "EMAIL_EXISTS", Message: "A user with this email already exists", Status: http.StatusConflict}

	// 429
	ErrRateLimited = &Error{Code: "RATE_LIMITED", Message: "Too many requests, slow down", Status: http.StatusTooManyRequests}

	// 500
	ErrInternal = &Error{Code: "INTERNAL_ERROR", Message: "Internal server error", Status: http.StatusInternalServerError}

	// 503
	ErrServiceUnavailable = &Error{Code: "SERVICE_UNAVAILABLE", Message: "Service temporarily unavailable", Status: http.StatusServiceUnavailable}
)

type errorEnvelope struct {
	Error *Error `json:"error"`
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

const contentTypeJSON = "application/json; charset=utf-8"

// WriteError renders err in the error envelope. Unknown error types map to
// a generic 500 so internal detail never leaks.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*Error)
	if !ok {
		apiErr = ErrInternal
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: apiErr})
}

// WriteSuccess renders data in the success envelope.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}
