package echo

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"imagehub/internal/authz"
	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeErrorHandler(t *testing.T, err error) (int, map[string]string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandlerDeniedError(t *testing.T) {
	code, body := invokeErrorHandler(t, &authz.DeniedError{
		Reason:  authz.ReasonCrossTeam,
		Message: "Access denied: You can only access resources within your team",
	})

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied: You can only access resources within your team", body[jsonKeyError])
	assert.Equal(t, string(authz.ReasonCrossTeam), body[jsonKeyReason])
}

func TestErrorHandlerAppError(t *testing.T) {
	code, body := invokeErrorHandler(t, apperrors.NotFound("Team not found"))

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Team not found", body[jsonKeyError])
	assert.NotContains(t, body, jsonKeyReason)
}

func TestErrorHandlerEchoHTTPError(t *testing.T) {
	code, body := invokeErrorHandler(t, echo.NewHTTPError(http.StatusUnsupportedMediaType, "Content-Type must be application/json"))

	assert.Equal(t, http.StatusUnsupportedMediaType, code)
	assert.Equal(t, "Content-Type must be application/json", body[jsonKeyError])
}

func TestErrorHandlerMasksInternalErrors(t *testing.T) {
	code, body := invokeErrorHandler(t, errors.New("pool exhausted: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, msgInternalServerError, body[jsonKeyError])
}

func TestErrorHandlerSkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late failure"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
