package types

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// APIError is the single error type handlers return. Code is the HTTP status
// the router boundary renders it with.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Validation builds a 400 error naming the invalid or missing field(s).
func Validation(message string) *APIError {
	return &APIError{Code: fiber.StatusBadRequest, Message: message}
}

// NotFound builds a 404 error.
func NotFound(message string) *APIError {
	return &APIError{Code: fiber.StatusNotFound, Message: message}
}

// Unauthorized builds a 401 error.
func Unauthorized(message string) *APIError {
	return &APIError{Code: fiber.StatusUnauthorized, Message: message}
}

// Conflict builds a 409 error.
func Conflict(message string) *APIError {
	return &APIError{Code: fiber.StatusConflict, Message: message}
}

// Internal builds a 500 error with a generic message so storage details
// never leak to callers.
func Internal() *APIError {
	return &APIError{Code: fiber.StatusInternalServerError, Message: "Internal server error"}
}
