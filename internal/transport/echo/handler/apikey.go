package handler

import (
	"net/http"
	"strings"
	"time"

	"imagehub/internal/auth"
	"imagehub/internal/domain/credential"
	"imagehub/internal/rbac"
	apperrors "imagehub/pkg/errors"
	"imagehub/pkg/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type APIKeyHandler struct {
	creds    CredentialStore
	users    UserGetter
	issuance IssuanceParams
	pageSize int
}

func NewAPIKeyHandler(creds CredentialStore, users UserGetter, issuance IssuanceParams, pageSize int) *APIKeyHandler {
	return &APIKeyHandler{
		creds:    creds,
		users:    users,
		issuance: issuance,
		pageSize: pageSize,
	}
}

type CreateAPIKeyRequest struct {
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	UserID    string     `json:"user_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// APIKeyResponse is the redacted wire form of a credential. The hash and
// salt never leave the store; the prefix is the only key material shown.
type APIKeyResponse struct {
	ID         string     `json:"id"`
	TeamID     string     `json:"team_id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	KeyPrefix  string     `json:"key_prefix"`
	Role       string     `json:"role"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateAPIKeyResponse carries the raw secret. This response is the only
// place the secret ever appears; it cannot be retrieved again.
type CreateAPIKeyResponse struct {
	APIKey APIKeyResponse `json:"api_key"`
	Key    string         `json:"key"`
}

func (h *APIKeyHandler) CreateAPIKey(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	var req CreateAPIKeyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validator.APIKeyName(req.Name); err != nil {
		return apperrors.BadRequest(err.Error())
	}

	role, err := rbac.ParseRole(strings.TrimSpace(req.Role))
	if err != nil {
		return apperrors.BadRequest(msgInvalidRoleValue)
	}
	if role == rbac.RoleRoot {
		return apperrors.BadRequest(msgRootRoleNotIssuable)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now().UTC()) {
		return apperrors.BadRequest(msgAPIKeyExpiryInPast)
	}

	// A key is bound to both a user and the team in the path; issuing one
	// for a user outside that team would mint a cross-team credential.
	owner, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if owner.TeamID != teamID {
		return apperrors.BadRequest(msgUserNotInTeam)
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		return apperrors.InternalServer(msgGenerateAPIKeyFail, err)
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return apperrors.InternalServer(msgGenerateAPIKeyFail, err)
	}

	cred, err := h.creds.Create(c.Request().Context(), credential.CreateCredentialInput{
		TeamID:    teamID,
		UserID:    userID,
		Name:      req.Name,
		KeyPrefix: auth.SecretPrefixOf(secret, h.issuance.PrefixLength()),
		KeyHash:   auth.DeriveHash(secret, salt, h.issuance.Iterations()),
		KeySalt:   salt,
		Role:      role,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKey: toAPIKeyResponse(cred),
		Key:    secret,
	})
}

func (h *APIKeyHandler) ListTeamAPIKeys(c echo.Context) error {
	teamID, err := uuid.Parse(c.Param(paramTeamID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidTeamID)
	}

	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	creds, err := h.creds.ListByTeamID(c.Request().Context(), teamID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAPIKeyResponses(creds))
}

func (h *APIKeyHandler) ListUserAPIKeys(c echo.Context) error {
	userID, err := uuid.Parse(c.Param(paramUserID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidUserID)
	}

	limit, offset, err := parseLimitOffset(c, h.pageSize)
	if err != nil {
		return err
	}

	creds, err := h.creds.ListByUserID(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAPIKeyResponses(creds))
}

func (h *APIKeyHandler) GetAPIKey(c echo.Context) error {
	keyID, err := uuid.Parse(c.Param(paramAPIKeyID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidAPIKeyID)
	}

	cred, err := h.creds.GetByID(c.Request().Context(), keyID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAPIKeyResponse(cred))
}

type UpdateAPIKeyRequest struct {
	Name      *string    `json:"name"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *APIKeyHandler) UpdateAPIKey(c echo.Context) error {
	keyID, err := uuid.Parse(c.Param(paramAPIKeyID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidAPIKeyID)
	}

	var req UpdateAPIKeyRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if err := validator.APIKeyName(trimmed); err != nil {
			return apperrors.BadRequest(err.Error())
		}
		req.Name = &trimmed
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now().UTC()) {
		return apperrors.BadRequest(msgAPIKeyExpiryInPast)
	}

	if err := h.creds.Update(c.Request().Context(), keyID, credential.UpdateCredentialInput{
		Name:      req.Name,
		ExpiresAt: req.ExpiresAt,
	}); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgAPIKeyUpdated)
}

// RevokeAPIKey hard-deletes the credential. Requests presenting the key fail
// from the next lookup on.
func (h *APIKeyHandler) RevokeAPIKey(c echo.Context) error {
	keyID, err := uuid.Parse(c.Param(paramAPIKeyID))
	if err != nil {
		return apperrors.BadRequest(msgInvalidAPIKeyID)
	}

	if err := h.creds.Delete(c.Request().Context(), keyID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, msgAPIKeyRevoked)
}

func toAPIKeyResponse(cred *credential.Credential) APIKeyResponse {
	return APIKeyResponse{
		ID:         cred.ID.String(),
		TeamID:     cred.TeamID.String(),
		UserID:     cred.UserID.String(),
		Name:       cred.Name,
		KeyPrefix:  cred.KeyPrefix,
		Role:       cred.Role.String(),
		ExpiresAt:  cred.ExpiresAt,
		LastUsedAt: cred.LastUsedAt,
		CreatedAt:  cred.CreatedAt,
	}
}

func toAPIKeyResponses(creds []*credential.Credential) []APIKeyResponse {
	out := make([]APIKeyResponse, 0, len(creds))
	for _, cred := range creds {
		out = append(out, toAPIKeyResponse(cred))
	}
	return out
}
