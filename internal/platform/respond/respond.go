// Package respond shapes every API response into the uniform envelope:
// {"success":true,"data":...} on success, {"success":false,"error":"..."}
// on failure.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListData is the payload shape for list endpoints.
type ListData struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

// OK writes a 200 success envelope around data.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// List writes a 200 success envelope around an {items, count} payload.
func List(c echo.Context, items any, count int) error {
	return OK(c, ListData{Items: items, Count: count})
}

// Bad writes a 400 failure envelope for validation errors.
func Bad(c echo.Context, msg string) error {
	return fail(c, http.StatusBadRequest, msg)
}

// NotFound writes a 404 failure envelope.
func NotFound(c echo.Context, msg string) error {
	return fail(c, http.StatusNotFound, msg)
}

// Unauthorized writes a 401 failure envelope. Callers keep the message
// generic so it confirms nothing about which credential part was wrong.
func Unauthorized(c echo.Context, msg string) error {
	return fail(c, http.StatusUnauthorized, msg)
}

// Internal writes a 500 failure envelope for backend errors.
func Internal(c echo.Context, msg string) error {
	return fail(c, http.StatusInternalServerError, msg)
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}
