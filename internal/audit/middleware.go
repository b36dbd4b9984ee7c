package audit

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"imagehub/internal/auth"
	"imagehub/internal/authz"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Recorder is the sink Record writes events to. *Logger satisfies it.
type Recorder interface {
	LogAsync(event *Event)
}

// Middleware records one event per request. It must sit outside the
// authentication middleware so denied attempts land in the trail too; when
// authentication failed, the event simply carries no actor.
type Middleware struct {
	recorder Recorder
}

func NewMiddleware(recorder Recorder) *Middleware {
	return &Middleware{recorder: recorder}
}

func (m *Middleware) Record() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			event := &Event{
				Action:     req.Method,
				Path:       req.URL.Path,
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
				RequestID:  c.Response().Header().Get(echo.HeaderXRequestID),
				DurationMS: time.Since(start).Milliseconds(),
			}
			event.ResourceType, event.ResourceID = resourceFromPath(req.URL.Path)

			if principal, perr := auth.GetPrincipal(c); perr == nil {
				if principal.UserID != uuid.Nil {
					actorID := principal.UserID
					event.ActorID = &actorID
				}
				event.ActorRole = principal.Role.String()
			}

			event.StatusCode = c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					event.StatusCode = httpErr.Code
				} else {
					event.StatusCode = apperrors.HTTPStatus(err)
				}
			}

			event.Status = classify(err, event.StatusCode)
			if reason, ok := authz.ReasonOf(err); ok {
				event.Reason = string(reason)
			}

			m.recorder.LogAsync(event)

			return err
		}
	}
}

// classify folds the outcome into the three trail statuses: rejections by
// the authentication or authorization layers are denied, other error
// responses are failures.
func classify(err error, code int) Status {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return StatusDenied
	case err == nil && code < http.StatusBadRequest:
		return StatusSuccess
	default:
		return StatusFailure
	}
}

// resourceFromPath names the most specific resource a path addresses. Bare
// collection paths fall back to their leading segment, "root" for "/".
func resourceFromPath(path string) (string, string) {
	params := authz.ExtractParams(path)
	switch {
	case params.ImageID != "":
		return "images", params.ImageID
	case params.APIKeyID != "":
		return "api-keys", params.APIKeyID
	case params.UserID != "":
		return "users", params.UserID
	case params.TeamID != "":
		return "teams", params.TeamID
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if parts[0] == "" {
		return "root", ""
	}

	return parts[0], ""
}
