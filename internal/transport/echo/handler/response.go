package handler

import (
	"github.com/labstack/echo/v4"
)

// respondMessage acknowledges an operation that produces no resource body.
// Errors are never rendered here; handlers return them and the server's
// error handler owns the error envelope.
func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}
