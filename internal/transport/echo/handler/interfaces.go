package handler

import (
	"context"
	"io"

	"imagehub/internal/audit"
	"imagehub/internal/domain/credential"
	"imagehub/internal/domain/image"
	"imagehub/internal/domain/team"
	"imagehub/internal/domain/user"
	"imagehub/internal/infra/cache"

	"github.com/google/uuid"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// TeamHandler interfaces
type TeamStore interface {
	Create(ctx context.Context, input team.CreateTeamInput) (*team.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error)
	List(ctx context.Context, limit, offset int) ([]*team.Team, error)
	Update(ctx context.Context, id uuid.UUID, input team.UpdateTeamInput) error
}

// UserHandler interfaces
type UserStore interface {
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	ListByTeamID(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*user.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.UpdateUserInput) error
}

type TeamGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error)
}

// TransactionExecutor runs the multi-table deletes that must stay atomic.
type TransactionExecutor interface {
	DeleteUserTransaction(ctx context.Context, userID uuid.UUID) error
	DeleteTeamTransaction(ctx context.Context, teamID uuid.UUID) ([]string, error)
}

// APIKeyHandler interfaces
type CredentialStore interface {
	Create(ctx context.Context, input credential.CreateCredentialInput) (*credential.Credential, error)
	GetByID(ctx context.Context, id uuid.UUID) (*credential.Credential, error)
	ListByTeamID(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*credential.Credential, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*credential.Credential, error)
	Update(ctx context.Context, id uuid.UUID, input credential.UpdateCredentialInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// IssuanceParams exposes the key-derivation parameters shared with the
// verifier, so issued credentials verify under the same settings.
type IssuanceParams interface {
	PrefixLength() int
	Iterations() int
}

// ImageHandler interfaces
type ImageStore interface {
	Create(ctx context.Context, input image.CreateImageInput) (*image.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*image.Image, error)
	List(ctx context.Context, filter image.ListImagesFilter) ([]*image.Image, error)
	Update(ctx context.Context, id uuid.UUID, input image.UpdateImageInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ObjectStore is the blob backend (used by image and team handlers)
type ObjectStore interface {
	Upload(src io.Reader, objectKey, contentType string) error
	PresignDownload(objectKey, contentType string, urlCache *cache.URLCache) (string, error)
	Delete(objectKey string, urlCache *cache.URLCache) error
}

// AuditHandler interfaces
type AuditQuerier interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]*audit.Event, error)
}
