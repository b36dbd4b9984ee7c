package auth

import (
	"context"
	"strings"
	"time"

	"imagehub/internal/repository"
	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
)

const lastUsedUpdateTimeout = 500 * time.Millisecond

// Middleware authenticates requests and attaches the resulting principal to
// the request context.
type Middleware struct {
	authenticator *Authenticator
	creds         repository.CredentialRepository
}

func NewMiddleware(authenticator *Authenticator, creds repository.CredentialRepository) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		creds:         creds,
	}
}

// Require rejects requests that do not carry a valid API key. Errors are
// returned to the transport error handler for status mapping.
func (m *Middleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			secret := extractAPIKey(c)

			principal, err := m.authenticator.Authenticate(c.Request().Context(), secret)
			if err != nil {
				return err
			}

			c.Set(ContextKeyPrincipal, principal)

			if !principal.IsRoot() {
				updateCtx, cancel := context.WithTimeout(context.Background(), lastUsedUpdateTimeout)
				defer cancel()
				if err := m.creds.UpdateLastUsed(updateCtx, principal.CredentialID); err != nil {
					c.Logger().Warnf("failed to update credential last_used_at for %s: %v", principal.CredentialID, err)
				}
			}

			return next(c)
		}
	}
}

func extractAPIKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(headerAPIKey))
}

// GetPrincipal returns the principal stored by Require.
func GetPrincipal(c echo.Context) (*Principal, error) {
	raw := c.Get(ContextKeyPrincipal)
	if raw == nil {
		return nil, apperrors.Unauthenticated(msgNoPrincipal)
	}

	principal, ok := raw.(*Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipal, nil)
	}

	return principal, nil
}
