package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"imagehub/internal/auth"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestRequestLogger_EmitsOneLinePerRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	err := RequestID()(RequestLogger(logger)(handler))(c)
	require.NoError(t, err)

	entry := logLine(t, &buf)
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/teams", entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Contains(t, entry, "duration")
	assert.Contains(t, entry, "remote_ip")
	assert.Equal(t, "info", entry["level"])
}

func TestRequestLogger_DerivesStatusFromError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/teams/unknown", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return apperrors.NotFound("Team not found")
	}

	err := RequestLogger(logger)(handler)(c)
	require.Error(t, err)

	entry := logLine(t, &buf)
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "info", entry["level"])
}

func TestRequestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return apperrors.InternalServer("boom", nil)
	}

	err := RequestLogger(logger)(handler)(c)
	require.Error(t, err)

	entry := logLine(t, &buf)
	assert.Equal(t, float64(http.StatusInternalServerError), entry["status"])
	assert.Equal(t, "error", entry["level"])
}

func TestRequestLogger_IncludesPrincipal(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	userID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		// Authentication normally attaches the principal deeper in the chain.
		c.Set(auth.ContextKeyPrincipal, &auth.Principal{UserID: userID})
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	err := RequestLogger(logger)(handler)(c)
	require.NoError(t, err)

	entry := logLine(t, &buf)
	assert.Equal(t, userID.String(), entry["principal"])
}
