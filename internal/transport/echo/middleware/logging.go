package middleware

import (
	"errors"
	"net/http"
	"time"

	"imagehub/internal/auth"
	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured log line per request: method, path,
// status, duration, client IP, request ID, and the principal when the
// request authenticated.
func RequestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)

			evt := logger.Info()
			if status >= http.StatusInternalServerError {
				evt = logger.Error()
			}

			evt = evt.
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Str("request_id", GetRequestID(c))

			if principal, perr := auth.GetPrincipal(c); perr == nil {
				if principal.IsRoot() {
					evt = evt.Str("principal", "root")
				} else {
					evt = evt.Str("principal", principal.UserID.String())
				}
			}

			evt.Msg("request completed")

			return err
		}
	}
}

// responseStatus resolves the status a request is answered with. Errors have
// not reached the error handler yet when this middleware observes them, so
// the status is derived from the error itself.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return apperrors.HTTPStatus(err)
}
