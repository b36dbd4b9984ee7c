package handler

import (
	"net/http"
	"strings"
	"time"

	"imagehub/internal/domain/user"
	apperrors "imagehub/pkg/errors"
	"imagehub/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users    UserStore
	teams    TeamGetter
	tx       TransactionExecutor
	pageSize int
}

func NewUserHandler(users UserStore, teams TeamGetter, tx TransactionExecutor, pageSize int) *UserHandler {
	return &UserHandler{
		users:    users,
		teams:    teams,
		tx:       tx,
		pageSize: pageSize,
	}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	var req CreateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validator.Username(req.Username); err != nil {
		return apperrors.BadRequest(err.Error())
	}
	if err := validator.Email(req.Email); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	// The team existence check runs first so a missing team reads as 404
	// rather than a foreign key failure.
	if _, err := h.teams.GetByID(c.Request().Context(), teamID); err != nil {
		return err
	}

	u, err := h.users.Create(c.Request().Context(), user.CreateUserInput{
		TeamID:   teamID,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	if _, err := h.teams.GetByID(c.Request().Context(), teamID); err != nil {
		return err
	}

	users, err := h.users.ListByTeamID(c.Request().Context(), teamID, limit, offset)
	if err != nil {
		return err
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	u, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(u))
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	var req UpdateUserRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		if err := validator.Username(trimmed); err != nil {
			return apperrors.BadRequest(err.Error())
		}
		req.Username = &trimmed
	}
	if req.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := validator.Email(lowered); err != nil {
			return apperrors.BadRequest(err.Error())
		}
		req.Email = &lowered
	}

	if err := h.users.Update(c.Request().Context(), userID, user.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
	}); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgUserUpdated)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	// Removes the user's credentials in the same transaction so no key
	// survives its owner.
	if err := h.tx.DeleteUserTransaction(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		TeamID:    u.TeamID.String(),
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
