// Package http provides the HTTP handler layer for the route search API.
// It handles request parsing, response formatting, and error mapping.
package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response represents a standardized API response envelope.
type Response struct {
	// Success indicates whether the request was successful
	Success bool `json:"success"`

	// Data contains the response payload (for successful responses)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (for error responses)
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeInternalError  = "internal_error"
)

// OK writes a 200 response with the standard success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &Response{Success: true, Data: data})
}

// BadRequest writes a 400 response with the standard error envelope.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &Response{
		Success: false,
		Error:   &ErrorDetail{Code: CodeInvalidRequest, Message: message},
	})
}

// NotFound writes a 404 response with the standard error envelope.
func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, &Response{
		Success: false,
		Error:   &ErrorDetail{Code: CodeNotFound, Message: message},
	})
}

// InternalError writes a 500 response with the standard error envelope.
func InternalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &Response{
		Success: false,
		Error:   &ErrorDetail{Code: CodeInternalError, Message: "An unexpected error occurred"},
	})
}
