package authz

import (
	"context"
	"errors"
	"net/http"

	"imagehub/internal/auth"
	"imagehub/internal/domain/credential"
	"imagehub/internal/domain/image"
	"imagehub/internal/domain/user"
	"imagehub/internal/rbac"
	"imagehub/internal/repository"
	apperrors "imagehub/pkg/errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Authorizer decides whether an authenticated principal may perform a request
// against the resource API. Decisions combine the compiled rule table with
// ownership checks against the backing stores.
type Authorizer struct {
	table  *Table
	users  repository.UserRepository
	creds  repository.CredentialRepository
	images repository.ImageRepository
	logger zerolog.Logger
}

func NewAuthorizer(
	table *Table,
	users repository.UserRepository,
	creds repository.CredentialRepository,
	images repository.ImageRepository,
	logger zerolog.Logger,
) *Authorizer {
	return &Authorizer{
		table:  table,
		users:  users,
		creds:  creds,
		images: images,
		logger: logger.With().Str("component", "authz").Logger(),
	}
}

// Authorize runs the permission gates in order and returns nil when the
// request may proceed. The first failing gate decides the verdict: a
// *DeniedError for policy denials, NotFound when a referenced resource does
// not exist, or Unavailable when a lookup could not be completed.
func (a *Authorizer) Authorize(ctx context.Context, method, path string, principal *auth.Principal, params Params) error {
	if principal == nil {
		return apperrors.Unauthenticated("no principal")
	}
	if principal.IsRoot() {
		return nil
	}

	minRole, ok := a.table.Resolve(method, path)
	if !ok {
		a.logger.Warn().Str("method", method).Str("path", path).Msg("no permission rule for request")
		return denied(ReasonNoRule, msgNoRule)
	}
	if !principal.Role.Satisfies(minRole) {
		return denied(ReasonInsufficientRole, msgInsufficientRole)
	}

	if params.TeamID != "" && params.TeamID != principal.TeamID.String() {
		return denied(ReasonCrossTeam, msgCrossTeam)
	}
	if err := a.checkUser(ctx, principal, params); err != nil {
		return err
	}
	if err := a.checkCredential(ctx, principal, params); err != nil {
		return err
	}
	return a.checkImage(ctx, method, principal, params)
}

// checkUser scopes access to user resources. Regular users may only reach
// their own record; admins may reach any user within their team.
func (a *Authorizer) checkUser(ctx context.Context, principal *auth.Principal, params Params) error {
	if params.UserID == "" {
		return nil
	}
	if principal.Role == rbac.RoleUser {
		if params.UserID != principal.UserID.String() {
			return denied(ReasonNotOwnUser, msgNotOwnUser)
		}
		return nil
	}

	target, err := a.fetchUser(ctx, params.UserID)
	if err != nil {
		return err
	}
	if target.TeamID != principal.TeamID {
		return denied(ReasonUserOutsideTeam, msgUserOutsideTeam)
	}
	return nil
}

// checkCredential scopes access to API key resources. Regular users may only
// reach keys bound to their own user; admins may reach any key in their team.
func (a *Authorizer) checkCredential(ctx context.Context, principal *auth.Principal, params Params) error {
	if params.APIKeyID == "" {
		return nil
	}

	target, err := a.fetchCredential(ctx, params.APIKeyID)
	if err != nil {
		return err
	}
	if principal.Role == rbac.RoleUser {
		if target.UserID != principal.UserID {
			return denied(ReasonNotOwnKey, msgNotOwnKey)
		}
		return nil
	}
	if target.TeamID != principal.TeamID {
		return denied(ReasonKeyOutsideTeam, msgKeyOutsideTeam)
	}
	return nil
}

// checkImage scopes access to image resources. Images are team-shared for
// reads and updates; deletion of another member's image requires admin.
func (a *Authorizer) checkImage(ctx context.Context, method string, principal *auth.Principal, params Params) error {
	if params.ImageID == "" {
		return nil
	}

	target, err := a.fetchImage(ctx, params.ImageID)
	if err != nil {
		return err
	}
	if target.TeamID != principal.TeamID {
		return denied(ReasonImageOutsideTeam, msgImageOutsideTeam)
	}
	if method == http.MethodDelete && principal.Role == rbac.RoleUser && target.UserID != principal.UserID {
		return denied(ReasonNotOwnImage, msgNotOwnImage)
	}
	return nil
}

// fetchUser resolves a raw path parameter to a stored user. A malformed id is
// reported the same way as an unknown one.
func (a *Authorizer) fetchUser(ctx context.Context, id string) (*user.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NotFound(msgUserNotFound)
	}
	target, err := a.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgUserNotFound)
		}
		a.logger.Error().Err(err).Str("user_id", id).Msg("user lookup failed during authorization")
		return nil, apperrors.Unavailable(msgUserLookup)
	}
	return target, nil
}

func (a *Authorizer) fetchCredential(ctx context.Context, id string) (*credential.Credential, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NotFound(msgAPIKeyNotFound)
	}
	target, err := a.creds.GetByID(ctx, cid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgAPIKeyNotFound)
		}
		a.logger.Error().Err(err).Str("api_key_id", id).Msg("API key lookup failed during authorization")
		return nil, apperrors.Unavailable(msgKeyLookup)
	}
	return target, nil
}

func (a *Authorizer) fetchImage(ctx context.Context, id string) (*image.Image, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NotFound(msgImageNotFound)
	}
	target, err := a.images.GetByID(ctx, iid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(msgImageNotFound)
		}
		a.logger.Error().Err(err).Str("image_id", id).Msg("image lookup failed during authorization")
		return nil, apperrors.Unavailable(msgImageLookup)
	}
	return target, nil
}
