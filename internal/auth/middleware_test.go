package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"imagehub/internal/domain/credential"
	"imagehub/internal/rbac"
	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRequire(t *testing.T) {
	stored, secret := issueTestCredential(t, rbac.RoleUser, nil)
	repo := &fakeCredentialRepo{byPrefix: map[string][]*credential.Credential{
		stored.KeyPrefix: {stored},
	}}
	mw := NewMiddleware(newTestAuthenticator(t, repo), repo)

	e := echo.New()
	handler := func(c echo.Context) error {
		p, err := GetPrincipal(c)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, p.CredentialID)
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerAPIKey, secret)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw.Require()(handler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotEmpty(t, repo.lastUsed)
	assert.Equal(t, stored.ID, repo.lastUsed[0])
}

func TestMiddlewareRequireMissingHeader(t *testing.T) {
	repo := &fakeCredentialRepo{}
	mw := NewMiddleware(newTestAuthenticator(t, repo), repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := mw.Require()(func(echo.Context) error {
		called = true
		return nil
	})(c)

	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.False(t, called, "handler must not run without a principal")
}

func TestMiddlewareRequireRootSkipsUsageUpdate(t *testing.T) {
	repo := &fakeCredentialRepo{}
	mw := NewMiddleware(newTestAuthenticator(t, repo), repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerAPIKey, testRootSecret)
	c := e.NewContext(req, httptest.NewRecorder())

	err := mw.Require()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Empty(t, repo.lastUsed)
}

func TestGetPrincipalWithoutAuthentication(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := GetPrincipal(c)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
