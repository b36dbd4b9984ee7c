package handler

import (
	"net/http"
	"strings"
	"time"

	"imagehub/internal/domain/team"
	"imagehub/internal/infra/cache"
	apperrors "imagehub/pkg/errors"
	"imagehub/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type TeamHandler struct {
	teams    TeamStore
	tx       TransactionExecutor
	objects  ObjectStore
	urlCache *cache.URLCache
	pageSize int
}

func NewTeamHandler(teams TeamStore, tx TransactionExecutor, objects ObjectStore, urlCache *cache.URLCache, pageSize int) *TeamHandler {
	return &TeamHandler{
		teams:    teams,
		tx:       tx,
		objects:  objects,
		urlCache: urlCache,
		pageSize: pageSize,
	}
}

type CreateTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *TeamHandler) CreateTeam(c echo.Context) error {
	var req CreateTeamRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validator.TeamName(req.Name); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	t, err := h.teams.Create(c.Request().Context(), team.CreateTeamInput{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTeamResponse(t))
}

func (h *TeamHandler) ListTeams(c echo.Context) error {
	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	teams, err := h.teams.List(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeamResponse(t))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TeamHandler) GetTeam(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	t, err := h.teams.GetByID(c.Request().Context(), teamID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTeamResponse(t))
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *TeamHandler) UpdateTeam(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	var req UpdateTeamRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.TeamName(trimmed); err != nil {
			return apperrors.BadRequest(err.Error())
		}
		req.Name = &trimmed
	}

	if err := h.teams.Update(c.Request().Context(), teamID, team.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgTeamUpdated)
}

func (h *TeamHandler) DeleteTeam(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	objectKeys, err := h.tx.DeleteTeamTransaction(c.Request().Context(), teamID)
	if err != nil {
		return err
	}

	// The rows are gone; blob removal is best effort and an orphaned blob is
	// logged for cleanup rather than failing the completed delete.
	for _, key := range objectKeys {
		if err := h.objects.Delete(key, h.urlCache); err != nil {
			c.Logger().Warnf("orphaned blob %s after deleting team %s: %v", key, teamID, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func toTeamResponse(t *team.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
