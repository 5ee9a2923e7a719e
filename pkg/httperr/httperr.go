// Package httperr defines the API error taxonomy and the structured error
// response body shared by all handlers and middleware.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is an API-visible error carrying the HTTP status and a stable code.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: "VALIDATION_ERROR", Message: message}
}

// Internal is the generic 500. It never carries internal error text; callers
// log the real cause with the correlation id before writing it.
func Internal() *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "An unexpected error occurred. Please try again later.",
	}
}

type errorBody struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// Write renders err as the structured error body. Errors outside the
// taxonomy are collapsed into the generic internal response.
func Write(w http.ResponseWriter, correlationID string, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal()
	}
	if e.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorBody{
		Code:          e.Code,
		Message:       e.Message,
		CorrelationID: correlationID,
	}})
}
