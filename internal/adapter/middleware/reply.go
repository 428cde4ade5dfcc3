package middleware

import "github.com/labstack/echo/v4"

// abort writes the standard failure envelope.
func abort(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]any{"success": false, "message": msg})
}
