package http

import (
	"errors"
	"net/http"

	"farmfund-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Envelope wraps every response body.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Success: true, Data: data})
}

func okList[T any](c echo.Context, items []T) error {
	n := len(items)
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: items, Count: &n})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: msg})
}

func invalid(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "validation failed",
		Errors:  ToFieldErrors(err),
	})
}

// StatusOf maps an error kind to its HTTP status.
func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrStateConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as a failure envelope. Internal causes are logged, never returned.
func fail(c echo.Context, err error) error {
	code := StatusOf(err)
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(code, Envelope{Success: false, Message: apperr.PublicMessage(err)})
}

// ErrorHandler renders errors that escape handlers (routing, binder, panics
// recovered upstream) in the same envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, isStr := he.Message.(string); isStr && he.Code < http.StatusInternalServerError {
			msg = m
		}
		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		_ = c.JSON(he.Code, Envelope{Success: false, Message: msg})
		return
	}
	_ = fail(c, err)
}
