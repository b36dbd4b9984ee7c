package echo

import (
	"errors"
	"fmt"
	"net/http"

	"imagehub/internal/authz"
	"imagehub/internal/transport/echo/middleware"
	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	jsonKeyError     = "error"
	jsonKeyReason    = "reason"
	jsonKeyRequestID = "request_id"

	msgInternalServerError = "Internal server error"
)

// NewHTTPErrorHandler returns the error handler translating domain errors to
// wire responses. Handlers and middleware return errors; nothing below this
// point writes its own error envelope. Internal errors are never exposed to
// clients.
func NewHTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := msgInternalServerError

		var httpErr *echo.HTTPError
		var appErr *apperrors.AppError
		var deniedErr *authz.DeniedError
		switch {
		case errors.As(err, &httpErr):
			code = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
		case errors.As(err, &appErr):
			code = apperrors.HTTPStatus(appErr)
			if code < http.StatusInternalServerError {
				message = appErr.Message
			}
		case errors.As(err, &deniedErr):
			code = http.StatusForbidden
			message = deniedErr.Message
		default:
			code = apperrors.HTTPStatus(err)
		}

		requestID := middleware.GetRequestID(c)

		evt := logger.Warn()
		if code >= http.StatusInternalServerError {
			evt = logger.Error()
			message = msgInternalServerError
		}
		evt.Err(err).
			Int("status", code).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Str("request_id", requestID).
			Msg("request failed")

		body := map[string]string{
			jsonKeyError:     message,
			jsonKeyRequestID: requestID,
		}
		if reason, ok := authz.ReasonOf(err); ok {
			body[jsonKeyReason] = string(reason)
		}

		if writeErr := c.JSON(code, body); writeErr != nil {
			logger.Error().Err(writeErr).Str("request_id", requestID).Msg("failed to write error response")
		}
	}
}
