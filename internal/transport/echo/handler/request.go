package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "imagehub/pkg/errors"

	"github.com/labstack/echo/v4"
)

const (
	contentTypeJSON          = "application/json"
	maxStrictBodyBytes int64 = 1 << 20 // Keep parser bound aligned with global body limit.
)

func bindStrictJSON(c echo.Context, dst interface{}) error {
	if !strings.HasPrefix(strings.ToLower(c.Request().Header.Get(echo.HeaderContentType)), contentTypeJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	body := io.LimitReader(c.Request().Body, maxStrictBodyBytes)
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}

// parseLimitOffset reads the pagination query parameters. "skip" is accepted
// as an alias for "offset" for callers of the previous API generation.
func parseLimitOffset(c echo.Context, defaultLimit int) (int, int, error) {
	limit := defaultLimit
	if raw := c.QueryParam(queryParamLimit); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, apperrors.BadRequest(msgInvalidPagination)
		}
		limit = v
	}

	offset := 0
	raw := c.QueryParam(queryParamOffset)
	if raw == "" {
		raw = c.QueryParam(queryParamSkip)
	}
	if raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, apperrors.BadRequest(msgInvalidPagination)
		}
		offset = v
	}

	return limit, offset, nil
}
