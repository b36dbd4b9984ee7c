package authz

import (
	"net/http"

	"imagehub/internal/auth"

	"github.com/labstack/echo/v4"
)

// Middleware enforces the permission table and ownership rules for requests
// that carry an authenticated principal.
type Middleware struct {
	authorizer *Authorizer
}

func NewMiddleware(authorizer *Authorizer) *Middleware {
	return &Middleware{authorizer: authorizer}
}

// Require returns echo middleware running the authorization gates. It must be
// registered after the authentication middleware that stores the principal.
func (m *Middleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// CORS preflight requests carry no credentials.
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}

			principal, err := auth.GetPrincipal(c)
			if err != nil {
				return err
			}

			req := c.Request()
			params := ExtractParams(req.URL.Path)
			if err := m.authorizer.Authorize(req.Context(), req.Method, req.URL.Path, principal, params); err != nil {
				return err
			}
			return next(c)
		}
	}
}
